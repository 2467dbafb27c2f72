package srs

import (
	"time"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// clampIndex forces an interval index into the valid range [0, MaxIndex].
// Progress records loaded with an out-of-range index are repaired here
// rather than rejected.
func clampIndex(index int, params *Params) int {
	if index < 0 {
		return 0
	}
	if index > params.MaxIndex() {
		return params.MaxIndex()
	}
	return index
}

// nextIndex determines the new interval index after a review.
//
// A correct answer advances one rung, capped at the top of the ladder.
// A wrong answer resets to the first rung regardless of how high the word
// had climbed.
func nextIndex(current int, correct bool, params *Params) int {
	if !correct {
		return 0
	}

	current = clampIndex(current, params)
	if current == params.MaxIndex() {
		return current
	}
	return current + 1
}

// reviewDateAt schedules the next review for an index, counted in whole
// days from today. The result carries the calendar date only; the time
// portion is zeroed.
func reviewDateAt(index int, today time.Time, params *Params) time.Time {
	days := params.Intervals[clampIndex(index, params)]
	return domain.DateOnly(today).AddDate(0, 0, days)
}

// isMastered reports whether an index has reached the top of the ladder.
func isMastered(index int, params *Params) bool {
	return clampIndex(index, params) == params.MaxIndex()
}

// stateOf derives the lifecycle state for an index.
//
// A word that has never been answered correctly is still "learning" no
// matter how often it was answered wrong; mastery requires having climbed
// to the final rung.
func stateOf(index int, everCorrect bool, params *Params) domain.WordState {
	index = clampIndex(index, params)

	switch {
	case index == 0 && !everCorrect:
		return domain.WordStateLearning
	case isMastered(index, params):
		return domain.WordStateMastered
	default:
		return domain.WordStateReviewing
	}
}

// applyOutcome creates a new WordProgress with updated values after a
// review. It follows the immutable update pattern: the input record is
// cloned, never modified.
func applyOutcome(
	progress *domain.WordProgress,
	correct bool,
	today time.Time,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := progress.Clone()

	next.IntervalIndex = nextIndex(progress.IntervalIndex, correct, params)
	if correct {
		next.CorrectCount++
	} else {
		next.IncorrectCount++
	}

	reviewAt := reviewDateAt(next.IntervalIndex, today, params)
	next.NextReviewAt = &reviewAt
	next.LastReviewedAt = now
	next.UpdatedAt = now

	return next
}
