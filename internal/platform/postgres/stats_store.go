package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface
// using a PostgreSQL database as the storage backend. It covers both the
// per-day counter rows and the per-user streak record.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// GetDaily implements store.StatsStore.GetDaily
// Returns store.ErrDailyStatsNotFound if the user has not studied that day.
func (s *PostgresStatsStore) GetDaily(
	ctx context.Context,
	userID uuid.UUID,
	day time.Time,
) (*domain.DailyStats, error) {
	query := `
		SELECT user_id, day, new_words_learned, reviews_completed
		FROM daily_stats
		WHERE user_id = $1 AND day = $2`

	var stats domain.DailyStats
	err := s.db.QueryRowContext(ctx, query, userID, domain.DateOnly(day)).Scan(
		&stats.UserID,
		&stats.Day,
		&stats.NewWordsLearned,
		&stats.ReviewsCompleted,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrDailyStatsNotFound
		}
		return nil, store.NewStoreError("daily_stats", "get", "query failed", MapError(err))
	}

	return &stats, nil
}

// UpsertDaily implements store.StatsStore.UpsertDaily
// It saves a counter row, keyed by (user_id, day).
func (s *PostgresStatsStore) UpsertDaily(ctx context.Context, stats *domain.DailyStats) error {
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO daily_stats (user_id, day, new_words_learned, reviews_completed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, day) DO UPDATE SET
			new_words_learned = EXCLUDED.new_words_learned,
			reviews_completed = EXCLUDED.reviews_completed`

	_, err := s.db.ExecContext(ctx, query,
		stats.UserID,
		domain.DateOnly(stats.Day),
		stats.NewWordsLearned,
		stats.ReviewsCompleted,
	)
	if err != nil {
		return store.NewStoreError("daily_stats", "upsert", "write failed", MapError(err))
	}

	return nil
}

// GetStreak implements store.StatsStore.GetStreak
// Returns store.ErrStreakNotFound if the user has never studied.
func (s *PostgresStatsStore) GetStreak(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StreakState, error) {
	query := `
		SELECT user_id, current_streak, longest_streak, last_activity_date
		FROM streak_state
		WHERE user_id = $1`

	var streak domain.StreakState
	var lastActivity sql.NullTime
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&streak.UserID,
		&streak.CurrentStreak,
		&streak.LongestStreak,
		&lastActivity,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrStreakNotFound
		}
		return nil, store.NewStoreError("streak_state", "get", "query failed", MapError(err))
	}

	if lastActivity.Valid {
		day := domain.DateOnly(lastActivity.Time)
		streak.LastActivityDate = &day
	}

	return &streak, nil
}

// UpsertStreak implements store.StatsStore.UpsertStreak
func (s *PostgresStatsStore) UpsertStreak(ctx context.Context, streak *domain.StreakState) error {
	if err := streak.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var lastActivity sql.NullTime
	if streak.LastActivityDate != nil {
		lastActivity = sql.NullTime{Time: domain.DateOnly(*streak.LastActivityDate), Valid: true}
	}

	query := `
		INSERT INTO streak_state (user_id, current_streak, longest_streak, last_activity_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_activity_date = EXCLUDED.last_activity_date`

	_, err := s.db.ExecContext(ctx, query,
		streak.UserID,
		streak.CurrentStreak,
		streak.LongestStreak,
		lastActivity,
	)
	if err != nil {
		return store.NewStoreError("streak_state", "upsert", "write failed", MapError(err))
	}

	return nil
}

// WithTx implements store.StatsStore.WithTx
// It returns a store instance bound to the provided transaction, which is
// created and managed by the caller.
func (s *PostgresStatsStore) WithTx(tx *sql.Tx) store.StatsStore {
	return &PostgresStatsStore{
		db:     tx,
		logger: s.logger,
	}
}
