package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// WordState describes where a word sits in its learning lifecycle.
// It is derived from the interval index and answer history, never set
// independently.
type WordState string

// Possible word states
const (
	WordStateLearning  WordState = "learning"
	WordStateReviewing WordState = "reviewing"
	WordStateMastered  WordState = "mastered"
)

// Common validation errors for WordProgress
var (
	ErrEmptyProgressUserID   = errors.New("word progress user ID cannot be empty")
	ErrEmptyProgressWordID   = errors.New("word progress word ID cannot be empty")
	ErrNegativeIntervalIndex = errors.New("interval index must be greater than or equal to 0")
	ErrNegativeCount         = errors.New("answer counters cannot be negative")
)

// WordProgress tracks a user's spaced repetition state for a single
// vocabulary word. A record is created lazily on the first interaction
// with the word.
//
// NextReviewAt is nil for a word that has never been scheduled. The
// IntervalIndex points into the interval ladder and is kept inside the
// ladder's bounds by the srs package; a record loaded with an out-of-range
// index is clamped rather than rejected.
type WordProgress struct {
	UserID         uuid.UUID  `json:"user_id"`
	WordID         uuid.UUID  `json:"word_id"`
	IntervalIndex  int        `json:"interval_index"`
	NextReviewAt   *time.Time `json:"next_review_at,omitempty"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	IsBookmarked   bool       `json:"is_bookmarked"`
	LastReviewedAt time.Time  `json:"last_reviewed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewWordProgress creates a fresh progress record for a user and word.
// The word starts at the bottom of the ladder with no scheduled review.
func NewWordProgress(userID, wordID uuid.UUID, now time.Time) (*WordProgress, error) {
	progress := &WordProgress{
		UserID:         userID,
		WordID:         wordID,
		IntervalIndex:  0,
		NextReviewAt:   nil,
		CorrectCount:   0,
		IncorrectCount: 0,
		IsBookmarked:   false,
		LastReviewedAt: time.Time{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the WordProgress has valid data.
// Returns an error if any field fails validation.
func (p *WordProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}

	if p.WordID == uuid.Nil {
		return ErrEmptyProgressWordID
	}

	if p.IntervalIndex < 0 {
		return ErrNegativeIntervalIndex
	}

	if p.CorrectCount < 0 || p.IncorrectCount < 0 {
		return ErrNegativeCount
	}

	return nil
}

// EverAnsweredCorrectly reports whether the word has at least one correct
// answer on record. A word with none is still eligible as "new" regardless
// of its interval index.
func (p *WordProgress) EverAnsweredCorrectly() bool {
	return p.CorrectCount > 0
}

// Clone returns a deep copy of the progress record. The srs package uses
// this to follow the immutable update pattern: transitions produce a new
// record instead of mutating the input.
func (p *WordProgress) Clone() *WordProgress {
	clone := *p
	if p.NextReviewAt != nil {
		t := *p.NextReviewAt
		clone.NextReviewAt = &t
	}
	return &clone
}
