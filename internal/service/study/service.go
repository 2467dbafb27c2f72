// Package study implements the spaced repetition scheduling engine: it
// decides which words are new versus due, applies recall outcomes through
// the interval ladder, and maintains daily quotas, batches, and streaks.
package study

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// StudyResult is one per-word recall judgment from a study session.
type StudyResult struct {
	WordID  uuid.UUID `json:"word_id"`
	Correct bool      `json:"correct"`
	Skipped bool      `json:"skipped"`
}

// StudySummary is the stats snapshot returned after a session's outcomes
// have been applied. UnknownWords counts entries that referenced word IDs
// missing from the dictionary; those entries are dropped, not fatal.
type StudySummary struct {
	Processed          int `json:"processed"`
	UnknownWords       int `json:"unknown_words"`
	WordsLearnedToday  int `json:"words_learned_today"`
	WordsReviewedToday int `json:"words_reviewed_today"`
	CurrentStreak      int `json:"current_streak"`
	LongestStreak      int `json:"longest_streak"`
}

// ProgressStats is the aggregate progress snapshot for a user.
type ProgressStats struct {
	WordsLearnedToday      int  `json:"words_learned_today"`
	WordsReviewedToday     int  `json:"words_reviewed_today"`
	RemainingLearningQuota int  `json:"remaining_learning_quota"`
	RemainingReviewQuota   int  `json:"remaining_review_quota"`
	LearningGoalReached    bool `json:"learning_goal_reached"`
	ReviewGoalReached      bool `json:"review_goal_reached"`
	CurrentStreak          int  `json:"current_streak"`
	LongestStreak          int  `json:"longest_streak"`
	DueCount               int  `json:"due_count"`
	MasteredCount          int  `json:"mastered_count"`
	TotalWordsLearned      int  `json:"total_words_learned"`
}

// StudyService provides the operations the surrounding application calls
// to run study sessions and track progress.
type StudyService interface {
	// GetWordsForLearning returns today's batch of new words for the
	// filters, truncated to the remaining daily learning quota. The batch
	// membership is deterministic for a given (user, day, filters, goal)
	// combination and is cached for the rest of the day.
	// A dailyGoal of 0 uses the configured default.
	GetWordsForLearning(
		ctx context.Context,
		userID uuid.UUID,
		filters domain.Filters,
		dailyGoal int,
	) ([]*domain.VocabularyWord, error)

	// GetWordsForReview returns today's due words for the filters, most
	// overdue first, truncated to the remaining daily review quota, with
	// the same per-day caching as learning batches.
	// A reviewLimit of 0 uses the configured default.
	GetWordsForReview(
		ctx context.Context,
		userID uuid.UUID,
		filters domain.Filters,
		reviewLimit int,
	) ([]*domain.VocabularyWord, error)

	// GetTodaysBatch returns the members of the batch already selected
	// today for the given mode, re-shuffled with a fresh session seed and
	// bypassing the quota check. This is the "re-study today's words"
	// path: it stays servable after the quota is exhausted. Returns an
	// empty list if no batch has been selected today.
	GetTodaysBatch(
		ctx context.Context,
		userID uuid.UUID,
		mode domain.BatchMode,
		filters domain.Filters,
	) ([]*domain.VocabularyWord, error)

	// ProcessStudyResults applies a session's outcomes in input order,
	// updates per-word progress through the interval ladder, rolls the
	// daily counters over on a new day, and advances or breaks the
	// learning streak. Entries referencing unknown word IDs are skipped
	// and counted in the returned summary.
	ProcessStudyResults(
		ctx context.Context,
		userID uuid.UUID,
		results []StudyResult,
	) (*StudySummary, error)

	// ToggleBookmark flips the bookmark flag on a word, creating the
	// progress record lazily if the user has never interacted with the
	// word. Returns the new bookmark state.
	ToggleBookmark(ctx context.Context, userID, wordID uuid.UUID) (bool, error)

	// GetProgressStats returns the aggregate progress snapshot for a user.
	GetProgressStats(ctx context.Context, userID uuid.UUID) (*ProgressStats, error)
}

// Common error types for StudyService
var (
	// ErrUnknownWord indicates that a word ID does not exist in the
	// loaded dictionary.
	ErrUnknownWord = errors.New("word not found in dictionary")

	// ErrInvalidMode indicates an unknown batch mode.
	ErrInvalidMode = errors.New("invalid batch mode")

	// ErrEmptyResults indicates a results submission with no entries.
	ErrEmptyResults = errors.New("study results cannot be empty")
)

// ServiceError wraps errors from the study service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "select_batch",
	// "process_results")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSelectBatchError returns a new ServiceError for batch selection.
func NewSelectBatchError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "select_batch",
		Message:   message,
		Err:       err,
	}
}

// NewProcessResultsError returns a new ServiceError for outcome processing.
func NewProcessResultsError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "process_results",
		Message:   message,
		Err:       err,
	}
}
