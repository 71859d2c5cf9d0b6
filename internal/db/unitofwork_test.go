package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/KwakOri/Temis-sub000/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStop = errors.New("stop")

// newScratchUoW returns a unit of work over an in-memory DB holding one
// scratch table, plus the raw handle for reading outside transactions.
func newScratchUoW(t *testing.T) (*db.SQLiteUnitOfWork, *sql.DB) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`CREATE TABLE scratch (k TEXT PRIMARY KEY, v TEXT NOT NULL)`)
	require.NoError(t, err)
	return db.NewSQLiteUnitOfWork(database), database
}

func insert(k, v string) func(ctx context.Context, tx db.DBTX) error {
	return func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO scratch (k, v) VALUES (?, ?)`, k, v)
		return err
	}
}

func countRows(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM scratch`).Scan(&n))
	return n
}

func TestWithinTx_CommitsOrRollsBack(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(k string) func(ctx context.Context, tx db.DBTX) error
		wantErr  error
		wantRows int
	}{
		{
			name:     "success commits",
			fn:       func(k string) func(context.Context, db.DBTX) error { return insert(k, "v") },
			wantRows: 1,
		},
		{
			name: "error rolls back and is returned unwrapped",
			fn: func(k string) func(context.Context, db.DBTX) error {
				return func(ctx context.Context, tx db.DBTX) error {
					if err := insert(k, "v")(ctx, tx); err != nil {
						return err
					}
					return errStop
				}
			},
			wantErr:  errStop,
			wantRows: 0,
		},
		{
			name: "second write failing undoes the first",
			fn: func(k string) func(context.Context, db.DBTX) error {
				return func(ctx context.Context, tx db.DBTX) error {
					if err := insert(k, "v")(ctx, tx); err != nil {
						return err
					}
					return insert(k, "dup")(ctx, tx)
				}
			},
			wantRows: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uow, database := newScratchUoW(t)

			err := uow.WithinTx(context.Background(), tc.fn("key"))
			switch {
			case tc.wantErr != nil:
				assert.Equal(t, tc.wantErr, err)
			case tc.wantRows == 0:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantRows, countRows(t, database))
		})
	}
}

func TestWithinTx_PanicRollsBackAndRepanics(t *testing.T) {
	uow, database := newScratchUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			require.NoError(t, insert("a", "v")(ctx, tx))
			panic("boom")
		})
	})
	assert.Equal(t, 0, countRows(t, database))

	// The in-memory DB has a single connection; it must be free again.
	require.NoError(t, uow.WithinTx(context.Background(), insert("b", "v")))
	assert.Equal(t, 1, countRows(t, database))
}

func TestWithinTx_BeginFailsOnCancelledContext(t *testing.T) {
	uow, database := newScratchUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(context.Context, db.DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "beginning transaction")
	assert.False(t, called)
	assert.Equal(t, 0, countRows(t, database))
}
