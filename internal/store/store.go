// Package store writes labelled snapshots of exported deposit tables to
// SQLite or Postgres. Snapshots are write-only: nothing in the application
// reads them back.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/emcdo411/greenland-ree-dashboard/internal/db"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Snapshot is a labelled copy of a scenario result.
type Snapshot struct {
	ID        string
	Label     string
	CreatedAt time.Time
	Scenario  scenario.Config
	Rows      []scenario.Row
}

// NewSnapshot stamps res with a fresh id and the current time.
func NewSnapshot(label string, res scenario.Result) Snapshot {
	return Snapshot{
		ID:        uuid.New().String(),
		Label:     label,
		CreatedAt: time.Now().UTC(),
		Scenario:  res.Config,
		Rows:      res.Rows,
	}
}

// Sink persists snapshots.
type Sink interface {
	Migrate(ctx context.Context) error
	WriteSnapshot(ctx context.Context, snap Snapshot) (int64, error)
	Close() error
}

// Open connects to the configured driver and migrates the schema.
func Open(ctx context.Context, driver, dsn string) (Sink, error) {
	var (
		sink Sink
		err  error
	)
	switch strings.ToLower(driver) {
	case DriverSQLite, "":
		sink, err = NewSQLite(dsn)
	case DriverPostgres, "postgresql":
		pool, perr := db.Connect(ctx, dsn)
		if perr != nil {
			return nil, perr
		}
		sink = NewPostgres(pool)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := sink.Migrate(ctx); err != nil {
		_ = sink.Close()
		return nil, err
	}
	return sink, nil
}

// rowColumns lists the snapshot_rows columns after snapshot_id and position.
func rowColumns() []string {
	cols := deposit.ColumnNames()
	return append(cols, "score_change")
}

// rowValues flattens one scenario row in rowColumns order. The adjusted
// deposit is stored.
func rowValues(r scenario.Row) []any {
	cols := deposit.Columns()
	vals := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		switch {
		case c.Integer:
			vals = append(vals, int64(c.Float(r.Adjusted)))
		case c.Numeric:
			vals = append(vals, c.Float(r.Adjusted))
		default:
			vals = append(vals, c.Format(r.Adjusted))
		}
	}
	return append(vals, r.ScoreChange)
}

// columnDDL renders the deposit column definitions for a CREATE TABLE.
func columnDDL(intType, floatType, textType string) string {
	var b strings.Builder
	for _, c := range deposit.Columns() {
		typ := textType
		switch {
		case c.Integer:
			typ = intType
		case c.Numeric:
			typ = floatType
		}
		b.WriteString("\t" + c.Name + " " + typ + ",\n")
	}
	b.WriteString("\tscore_change " + floatType + " NOT NULL DEFAULT 0")
	return b.String()
}
