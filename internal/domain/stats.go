package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for daily stats and streak state
var (
	ErrEmptyStatsUserID   = errors.New("stats user ID cannot be empty")
	ErrNegativeStatsCount = errors.New("stats counters cannot be negative")
	ErrNegativeStreak     = errors.New("streak counters cannot be negative")
)

// DailyStats records how much a user studied on one calendar day.
// Day carries date information only; the time portion is zeroed.
// A new row is created (and the previous day's counts left behind) the
// first time a study action happens after the day rolls over.
type DailyStats struct {
	UserID           uuid.UUID `json:"user_id"`
	Day              time.Time `json:"day"`
	NewWordsLearned  int       `json:"new_words_learned"`
	ReviewsCompleted int       `json:"reviews_completed"`
}

// NewDailyStats creates an empty stats row for the given calendar day.
func NewDailyStats(userID uuid.UUID, day time.Time) *DailyStats {
	return &DailyStats{
		UserID:           userID,
		Day:              DateOnly(day),
		NewWordsLearned:  0,
		ReviewsCompleted: 0,
	}
}

// Validate checks if the DailyStats has valid data.
func (s *DailyStats) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStatsUserID
	}

	if s.NewWordsLearned < 0 || s.ReviewsCompleted < 0 {
		return ErrNegativeStatsCount
	}

	return nil
}

// StreakState tracks a user's run of consecutive study days.
// LastActivityDate is nil until the first study action ever.
type StreakState struct {
	UserID           uuid.UUID  `json:"user_id"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
}

// NewStreakState creates an empty streak record for a user.
func NewStreakState(userID uuid.UUID) *StreakState {
	return &StreakState{
		UserID:        userID,
		CurrentStreak: 0,
		LongestStreak: 0,
	}
}

// Validate checks if the StreakState has valid data.
func (s *StreakState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStatsUserID
	}

	if s.CurrentStreak < 0 || s.LongestStreak < 0 {
		return ErrNegativeStreak
	}

	return nil
}

// DateOnly truncates a timestamp to its calendar date, discarding the
// time-of-day component while keeping the location. All day comparisons
// in the engine go through this.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaysBetween returns the number of calendar days from a to b.
// Positive when b is after a. Rounding absorbs DST-shortened or
// DST-lengthened days.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(DateOnly(b).Sub(DateOnly(a)).Hours() / 24))
}
