package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// StatsStore defines the interface for daily counters and streak state
// persistence.
type StatsStore interface {
	// GetDaily retrieves the stats row for a user and calendar day.
	// The day argument is compared at date granularity.
	// Returns ErrDailyStatsNotFound if the user has not studied that day.
	GetDaily(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DailyStats, error)

	// UpsertDaily saves a stats row, keyed by (user, day).
	UpsertDaily(ctx context.Context, stats *domain.DailyStats) error

	// GetStreak retrieves a user's streak record.
	// Returns ErrStreakNotFound if the user has never studied.
	GetStreak(ctx context.Context, userID uuid.UUID) (*domain.StreakState, error)

	// UpsertStreak saves a user's streak record.
	UpsertStreak(ctx context.Context, streak *domain.StreakState) error

	// WithTx returns a StatsStore instance bound to the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) StatsStore
}
