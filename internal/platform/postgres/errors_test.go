package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/platform/postgres"
	"github.com/hanzideck/hanzideck-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	unmapped := errors.New("connection reset")

	tests := []struct {
		name     string
		input    error
		sentinel error
	}{
		{
			name:     "no rows maps to not found",
			input:    sql.ErrNoRows,
			sentinel: store.ErrNotFound,
		},
		{
			name:     "unique violation maps to duplicate",
			input:    &pgconn.PgError{Code: "23505", ConstraintName: "word_progress_pkey"},
			sentinel: store.ErrDuplicate,
		},
		{
			name:     "foreign key violation maps to invalid entity",
			input:    &pgconn.PgError{Code: "23503", ConstraintName: "daily_batches_user_fk"},
			sentinel: store.ErrInvalidEntity,
		},
		{
			name:     "check violation maps to invalid entity",
			input:    &pgconn.PgError{Code: "23514", ConstraintName: "word_progress_interval_check"},
			sentinel: store.ErrInvalidEntity,
		},
		{
			name:     "not null violation maps to invalid entity",
			input:    &pgconn.PgError{Code: "23502", ColumnName: "user_id"},
			sentinel: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := postgres.MapError(tt.input)
			assert.ErrorIs(t, mapped, tt.sentinel)
			assert.ErrorContains(t, mapped, tt.input.Error())
		})
	}

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unrecognized error passes through unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, unmapped, postgres.MapError(unmapped))
	})
}

// failingDB is a store.DBTX whose write path always fails with a fixed
// error, letting the stores' error wrapping be tested without a database.
type failingDB struct {
	err error
}

func (f *failingDB) ExecContext(_ context.Context, _ string, _ ...any) (sql.Result, error) {
	return nil, f.err
}

func (f *failingDB) PrepareContext(_ context.Context, _ string) (*sql.Stmt, error) {
	return nil, f.err
}

func (f *failingDB) QueryContext(_ context.Context, _ string, _ ...any) (*sql.Rows, error) {
	return nil, f.err
}

func (f *failingDB) QueryRowContext(_ context.Context, _ string, _ ...any) *sql.Row {
	return nil
}

func TestUpsertWrapsDriverErrors(t *testing.T) {
	t.Parallel()

	db := &failingDB{err: &pgconn.PgError{Code: "23505", ConstraintName: "word_progress_pkey"}}
	progressStore := postgres.NewPostgresProgressStore(db, nil)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	progress, err := domain.NewWordProgress(uuid.New(), uuid.New(), now)
	require.NoError(t, err)

	err = progressStore.Upsert(context.Background(), progress)
	require.Error(t, err)

	// The sentinel survives the StoreError wrapping.
	assert.ErrorIs(t, err, store.ErrDuplicate)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "word_progress", storeErr.Entity)
	assert.Equal(t, "upsert", storeErr.Operation)
}

func TestListWrapsDriverErrors(t *testing.T) {
	t.Parallel()

	driverErr := errors.New("connection reset")
	progressStore := postgres.NewPostgresProgressStore(&failingDB{err: driverErr}, nil)

	_, err := progressStore.AllForUser(context.Background(), uuid.New())
	require.Error(t, err)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "word_progress", storeErr.Entity)
	assert.Equal(t, "list", storeErr.Operation)
	assert.ErrorIs(t, err, driverErr)
}
