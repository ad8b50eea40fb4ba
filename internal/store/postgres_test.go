package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgres(mock), mock
}

func snapshotCopyColumns() []string {
	cols := append([]string{"snapshot_id", "position"}, rowColumns()...)
	return append(cols, "geom")
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS ree\.snapshot_rows`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WriteSnapshot(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	snap := testSnapshot(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO ree\.snapshots`).
		WithArgs(snap.ID, "ban lifted", pgxmock.AnyArg(), 15, snap.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCopyFrom(pgx.Identifier{"ree", "snapshot_rows"}, snapshotCopyColumns()).
		WillReturnResult(15)
	mock.ExpectCommit()

	n, err := s.WriteSnapshot(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, int64(15), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WriteSnapshot_InsertError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO ree\.snapshots`).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	_, err := s.WriteSnapshot(context.Background(), testSnapshot(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert snapshot")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WriteSnapshot_CopyError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO ree\.snapshots`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCopyFrom(pgx.Identifier{"ree", "snapshot_rows"}, snapshotCopyColumns()).
		WillReturnError(errors.New("copy failed"))
	mock.ExpectRollback()

	_, err := s.WriteSnapshot(context.Background(), testSnapshot(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO ree.snapshot_rows")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_BeginError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("db down"))

	_, err := s.WriteSnapshot(context.Background(), testSnapshot(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
	assert.NoError(t, mock.ExpectationsWereMet())
}
