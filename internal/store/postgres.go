package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/db"
	"github.com/emcdo411/greenland-ree-dashboard/internal/geo"
)

const snapshotRowsTable = "ree.snapshot_rows"

// PostgresStore writes snapshots to the ree schema. Deposit locations are
// stored as PostGIS points.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres wraps an open pool. Close closes the pool.
func NewPostgres(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func postgresMigration() string {
	return `
CREATE EXTENSION IF NOT EXISTS postgis;
CREATE SCHEMA IF NOT EXISTS ree;

CREATE TABLE IF NOT EXISTS ree.snapshots (
	id         UUID PRIMARY KEY,
	label      TEXT NOT NULL,
	scenario   JSONB NOT NULL,
	row_count  INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ree.snapshot_rows (
	snapshot_id UUID NOT NULL REFERENCES ree.snapshots(id),
	position    INTEGER NOT NULL,
` + columnDDL("INTEGER", "DOUBLE PRECISION", "TEXT") + `,
	geom        geometry(Point, 4326),
	PRIMARY KEY (snapshot_id, position)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_label ON ree.snapshots(label);
CREATE INDEX IF NOT EXISTS idx_snapshot_rows_geom ON ree.snapshot_rows USING GIST (geom);
`
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration())
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// WriteSnapshot inserts the snapshot header and COPYs its rows in one
// transaction.
func (s *PostgresStore) WriteSnapshot(ctx context.Context, snap Snapshot) (int64, error) {
	scenarioJSON, err := json.Marshal(snap.Scenario)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: marshal scenario")
	}

	rows := make([][]any, 0, len(snap.Rows))
	for i, r := range snap.Rows {
		wkb, err := geo.EncodeEWKB(r.Adjusted)
		if err != nil {
			return 0, err
		}
		vals := append([]any{snap.ID, i}, rowValues(r)...)
		rows = append(rows, append(vals, wkb))
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`INSERT INTO ree.snapshots (id, label, scenario, row_count, created_at) VALUES ($1, $2, $3, $4, $5)`,
		snap.ID, snap.Label, scenarioJSON, len(snap.Rows), snap.CreatedAt,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: insert snapshot")
	}

	cols := append([]string{"snapshot_id", "position"}, rowColumns()...)
	cols = append(cols, "geom")
	n, err := db.CopyFrom(ctx, tx, snapshotRowsTable, cols, rows)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgres: commit snapshot")
	}

	zap.L().Debug("postgres: wrote snapshot",
		zap.String("id", snap.ID),
		zap.String("label", snap.Label),
		zap.Int64("rows", n),
	)
	return n, nil
}
