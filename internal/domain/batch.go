package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BatchMode identifies which study mode a daily batch was computed for.
type BatchMode string

// Possible batch modes
const (
	BatchModeLearning BatchMode = "learning"
	BatchModeReview   BatchMode = "review"
)

// Batch-specific validation errors
var (
	ErrEmptyBatchUserID = errors.New("daily batch user ID cannot be empty")
	ErrInvalidBatchMode = errors.New("invalid batch mode")
)

// IsValidBatchMode reports whether the mode is one of the known modes.
func IsValidBatchMode(mode BatchMode) bool {
	return mode == BatchModeLearning || mode == BatchModeReview
}

// DailyBatch is the deterministically selected set of words chosen for one
// study mode on one calendar day. It is cached so that reopening the app
// the same day reproduces the same membership, and invalidated when the
// day, the filters, or the quota in effect change.
type DailyBatch struct {
	UserID    uuid.UUID   `json:"user_id"`
	Mode      BatchMode   `json:"mode"`
	Day       time.Time   `json:"day"`
	FilterKey string      `json:"filter_key"`
	Quota     int         `json:"quota"`
	WordIDs   []uuid.UUID `json:"word_ids"`
}

// NewDailyBatch creates a batch for the given day, mode, and filter/quota
// combination.
func NewDailyBatch(
	userID uuid.UUID,
	mode BatchMode,
	day time.Time,
	filterKey string,
	quota int,
	wordIDs []uuid.UUID,
) (*DailyBatch, error) {
	batch := &DailyBatch{
		UserID:    userID,
		Mode:      mode,
		Day:       DateOnly(day),
		FilterKey: filterKey,
		Quota:     quota,
		WordIDs:   wordIDs,
	}

	if err := batch.Validate(); err != nil {
		return nil, err
	}

	return batch, nil
}

// Validate checks if the DailyBatch has valid data.
func (b *DailyBatch) Validate() error {
	if b.UserID == uuid.Nil {
		return ErrEmptyBatchUserID
	}

	if !IsValidBatchMode(b.Mode) {
		return ErrInvalidBatchMode
	}

	return nil
}

// Matches reports whether the batch is still current for the given day,
// filter key, and quota. A mismatch on any of the three invalidates it.
func (b *DailyBatch) Matches(day time.Time, filterKey string, quota int) bool {
	return SameDay(b.Day, day) && b.FilterKey == filterKey && b.Quota == quota
}

// Filters restricts the vocabulary to the selected levels and categories.
// An empty slice places no restriction on that dimension.
type Filters struct {
	Levels     []string `json:"levels,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Match reports whether a word passes the level and category filters.
func (f Filters) Match(word *VocabularyWord) bool {
	return matchesAny(word.Level, f.Levels) && matchesAny(word.Category, f.Categories)
}

// Key returns a canonical string identity for the filter settings.
// Equivalent filters (same selections in any order) produce the same key,
// which is what ties a cached DailyBatch to its filter combination.
func (f Filters) Key() string {
	levels := append([]string(nil), f.Levels...)
	categories := append([]string(nil), f.Categories...)
	sort.Strings(levels)
	sort.Strings(categories)
	return "levels=" + strings.Join(levels, ",") + ";categories=" + strings.Join(categories, ",")
}

func matchesAny(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}
