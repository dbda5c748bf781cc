package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/imirazoki/lantegi/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func readNote(uow *db.SQLiteUnitOfWork, worker string) (string, bool) {
	var note string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT note FROM worker_notes WHERE worker = ?`, worker)
		if err := row.Scan(&note); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return note, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO worker_notes (worker, note) VALUES (?, ?)`, "Mikel", "turno de mañana")
		return err
	})
	require.NoError(t, err)

	note, found := readNote(uow, "Mikel")
	assert.True(t, found)
	assert.Equal(t, "turno de mañana", note)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO worker_notes (worker, note) VALUES (?, ?)`, "Iban", "x"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)

	_, found := readNote(uow, "Iban")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO worker_notes (worker, note) VALUES (?, ?)`, "Unai", "x")
			panic("boom")
		})
	})

	_, found := readNote(uow, "Unai")
	assert.False(t, found, "row should not exist after panic rollback")
}
