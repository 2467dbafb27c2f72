package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/store"
)

// PostgresBatchStore implements the store.BatchStore interface
// using a PostgreSQL database as the storage backend.
// The selected word IDs are stored as a jsonb array so the stored order,
// which is part of the batch's identity, survives the round trip.
type PostgresBatchStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBatchStore creates a new PostgreSQL implementation of the
// BatchStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBatchStore(db store.DBTX, logger *slog.Logger) *PostgresBatchStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBatchStore{
		db:     db,
		logger: logger.With(slog.String("component", "batch_store")),
	}
}

// Ensure PostgresBatchStore implements store.BatchStore interface
var _ store.BatchStore = (*PostgresBatchStore)(nil)

// Get implements store.BatchStore.Get
// Returns store.ErrBatchNotFound when no batch matching the day and filter
// key exists for the user and mode.
func (s *PostgresBatchStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	mode domain.BatchMode,
	day time.Time,
	filterKey string,
) (*domain.DailyBatch, error) {
	query := `
		SELECT user_id, mode, day, filter_key, quota, word_ids
		FROM daily_batches
		WHERE user_id = $1 AND mode = $2 AND day = $3 AND filter_key = $4`

	var batch domain.DailyBatch
	var wordIDs []byte
	err := s.db.QueryRowContext(ctx, query, userID, mode, domain.DateOnly(day), filterKey).Scan(
		&batch.UserID,
		&batch.Mode,
		&batch.Day,
		&batch.FilterKey,
		&batch.Quota,
		&wordIDs,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrBatchNotFound
		}
		return nil, store.NewStoreError("daily_batch", "get", "query failed", MapError(err))
	}

	if err := json.Unmarshal(wordIDs, &batch.WordIDs); err != nil {
		return nil, fmt.Errorf("failed to decode batch word IDs: %w", err)
	}

	return &batch, nil
}

// Put implements store.BatchStore.Put
// The ON CONFLICT clause on (user_id, mode) makes the replacement a single
// atomic write: concurrent recomputations cannot interleave partial state.
func (s *PostgresBatchStore) Put(ctx context.Context, batch *domain.DailyBatch) error {
	if err := batch.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	wordIDs, err := json.Marshal(batch.WordIDs)
	if err != nil {
		return fmt.Errorf("failed to encode batch word IDs: %w", err)
	}

	query := `
		INSERT INTO daily_batches (user_id, mode, day, filter_key, quota, word_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, mode) DO UPDATE SET
			day = EXCLUDED.day,
			filter_key = EXCLUDED.filter_key,
			quota = EXCLUDED.quota,
			word_ids = EXCLUDED.word_ids`

	_, err = s.db.ExecContext(ctx, query,
		batch.UserID,
		batch.Mode,
		domain.DateOnly(batch.Day),
		batch.FilterKey,
		batch.Quota,
		wordIDs,
	)
	if err != nil {
		return store.NewStoreError("daily_batch", "put", "write failed", MapError(err))
	}

	return nil
}

// WithTx implements store.BatchStore.WithTx
// It returns a store instance bound to the provided transaction, which is
// created and managed by the caller.
func (s *PostgresBatchStore) WithTx(tx *sql.Tx) store.BatchStore {
	return &PostgresBatchStore{
		db:     tx,
		logger: s.logger,
	}
}
