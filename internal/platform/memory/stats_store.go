package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/store"
)

// statsKey identifies one (user, calendar day) counter row.
type statsKey struct {
	userID uuid.UUID
	day    string
}

func newStatsKey(userID uuid.UUID, day time.Time) statsKey {
	return statsKey{userID: userID, day: domain.DateOnly(day).Format(time.DateOnly)}
}

// StatsStore is an in-memory implementation of store.StatsStore.
type StatsStore struct {
	mu      sync.RWMutex
	daily   map[statsKey]*domain.DailyStats
	streaks map[uuid.UUID]*domain.StreakState
}

// NewStatsStore creates an empty in-memory stats store.
func NewStatsStore() *StatsStore {
	return &StatsStore{
		daily:   make(map[statsKey]*domain.DailyStats),
		streaks: make(map[uuid.UUID]*domain.StreakState),
	}
}

// Ensure StatsStore implements store.StatsStore interface
var _ store.StatsStore = (*StatsStore)(nil)

// GetDaily implements store.StatsStore.GetDaily
func (s *StatsStore) GetDaily(
	ctx context.Context,
	userID uuid.UUID,
	day time.Time,
) (*domain.DailyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.daily[newStatsKey(userID, day)]
	if !ok {
		return nil, store.ErrDailyStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

// UpsertDaily implements store.StatsStore.UpsertDaily
func (s *StatsStore) UpsertDaily(ctx context.Context, stats *domain.DailyStats) error {
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *stats
	copied.Day = domain.DateOnly(stats.Day)
	s.daily[newStatsKey(stats.UserID, stats.Day)] = &copied
	return nil
}

// GetStreak implements store.StatsStore.GetStreak
func (s *StatsStore) GetStreak(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StreakState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	streak, ok := s.streaks[userID]
	if !ok {
		return nil, store.ErrStreakNotFound
	}
	return cloneStreak(streak), nil
}

// UpsertStreak implements store.StatsStore.UpsertStreak
func (s *StatsStore) UpsertStreak(ctx context.Context, streak *domain.StreakState) error {
	if err := streak.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.streaks[streak.UserID] = cloneStreak(streak)
	return nil
}

// WithTx implements store.StatsStore.WithTx
// The in-memory store has no transaction support, so it returns itself.
func (s *StatsStore) WithTx(tx *sql.Tx) store.StatsStore {
	return s
}

func cloneStreak(streak *domain.StreakState) *domain.StreakState {
	copied := *streak
	if streak.LastActivityDate != nil {
		day := *streak.LastActivityDate
		copied.LastActivityDate = &day
	}
	return &copied
}
