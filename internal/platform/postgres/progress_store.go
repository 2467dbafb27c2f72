package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Get implements store.ProgressStore.Get
// It retrieves the progress record for a user and word.
// Returns store.ErrProgressNotFound if the user has never interacted with
// the word.
func (s *PostgresProgressStore) Get(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.WordProgress, error) {
	query := `
		SELECT user_id, word_id, interval_index, next_review_at,
		       correct_count, incorrect_count, is_bookmarked,
		       last_reviewed_at, created_at, updated_at
		FROM word_progress
		WHERE user_id = $1 AND word_id = $2`

	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, userID, wordID))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrProgressNotFound
		}
		return nil, store.NewStoreError("word_progress", "get", "query failed", MapError(err))
	}

	return progress, nil
}

// Upsert implements store.ProgressStore.Upsert
// It inserts the record on first interaction and replaces it afterwards,
// keyed by (user_id, word_id).
func (s *PostgresProgressStore) Upsert(ctx context.Context, progress *domain.WordProgress) error {
	log := s.logger

	if err := progress.Validate(); err != nil {
		log.Warn("word progress validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("word_id", progress.WordID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO word_progress
			(user_id, word_id, interval_index, next_review_at,
			 correct_count, incorrect_count, is_bookmarked,
			 last_reviewed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			interval_index = EXCLUDED.interval_index,
			next_review_at = EXCLUDED.next_review_at,
			correct_count = EXCLUDED.correct_count,
			incorrect_count = EXCLUDED.incorrect_count,
			is_bookmarked = EXCLUDED.is_bookmarked,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			updated_at = EXCLUDED.updated_at`

	var lastReviewedAt sql.NullTime
	if !progress.LastReviewedAt.IsZero() {
		lastReviewedAt = sql.NullTime{Time: progress.LastReviewedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		progress.UserID,
		progress.WordID,
		progress.IntervalIndex,
		progress.NextReviewAt,
		progress.CorrectCount,
		progress.IncorrectCount,
		progress.IsBookmarked,
		lastReviewedAt,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		return store.NewStoreError("word_progress", "upsert", "write failed", MapError(err))
	}

	return nil
}

// AllForUser implements store.ProgressStore.AllForUser
// It returns every progress record belonging to a user, or an empty slice
// for a user with no records.
func (s *PostgresProgressStore) AllForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.WordProgress, error) {
	query := `
		SELECT user_id, word_id, interval_index, next_review_at,
		       correct_count, incorrect_count, is_bookmarked,
		       last_reviewed_at, created_at, updated_at
		FROM word_progress
		WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, store.NewStoreError("word_progress", "list", "query failed", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	records := make([]*domain.WordProgress, 0)
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, store.NewStoreError("word_progress", "list", "row scan failed", MapError(err))
		}
		records = append(records, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("word_progress", "list", "row iteration failed", MapError(err))
	}

	return records, nil
}

// WithTx implements store.ProgressStore.WithTx
// It returns a store instance bound to the provided transaction, which is
// created and managed by the caller.
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*domain.WordProgress, error) {
	var progress domain.WordProgress
	var lastReviewedAt sql.NullTime

	err := row.Scan(
		&progress.UserID,
		&progress.WordID,
		&progress.IntervalIndex,
		&progress.NextReviewAt,
		&progress.CorrectCount,
		&progress.IncorrectCount,
		&progress.IsBookmarked,
		&lastReviewedAt,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewedAt.Valid {
		progress.LastReviewedAt = lastReviewedAt.Time
	}

	return &progress, nil
}
