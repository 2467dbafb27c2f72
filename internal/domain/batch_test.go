package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFiltersMatch(t *testing.T) {
	t.Parallel() // Enable parallel execution

	word := &VocabularyWord{
		Character:  "水",
		Definition: "water",
		Level:      "HSK1",
		Category:   "nature",
	}

	testCases := []struct {
		name     string
		filters  Filters
		expected bool
	}{
		{
			name:     "empty filters match everything",
			filters:  Filters{},
			expected: true,
		},
		{
			name:     "matching level",
			filters:  Filters{Levels: []string{"HSK1", "HSK2"}},
			expected: true,
		},
		{
			name:     "non-matching level",
			filters:  Filters{Levels: []string{"HSK3"}},
			expected: false,
		},
		{
			name:     "matching category",
			filters:  Filters{Categories: []string{"nature"}},
			expected: true,
		},
		{
			name:     "level matches but category does not",
			filters:  Filters{Levels: []string{"HSK1"}, Categories: []string{"food"}},
			expected: false,
		},
		{
			name:     "unknown level matches nothing, not an error",
			filters:  Filters{Levels: []string{"HSK99"}},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filters.Match(word); got != tc.expected {
				t.Errorf("Expected match=%v, got %v", tc.expected, got)
			}
		})
	}
}

func TestFiltersKeyCanonical(t *testing.T) {
	t.Parallel()

	a := Filters{Levels: []string{"HSK2", "HSK1"}, Categories: []string{"food", "nature"}}
	b := Filters{Levels: []string{"HSK1", "HSK2"}, Categories: []string{"nature", "food"}}

	if a.Key() != b.Key() {
		t.Errorf("Expected identical keys for equivalent filters: %q vs %q", a.Key(), b.Key())
	}

	c := Filters{Levels: []string{"HSK1"}}
	if a.Key() == c.Key() {
		t.Error("Expected different keys for different filters")
	}
}

func TestDailyBatchMatches(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 9, 12, 14, 30, 0, 0, time.UTC)
	batch, err := NewDailyBatch(uuid.New(), BatchModeLearning, day, Filters{}.Key(), 20, nil)
	if err != nil {
		t.Fatalf("NewDailyBatch returned error: %v", err)
	}

	if !batch.Matches(day, Filters{}.Key(), 20) {
		t.Error("Expected batch to match its own parameters")
	}
	if !batch.Matches(day.Add(5*time.Hour), Filters{}.Key(), 20) {
		t.Error("Expected batch to match a later time the same day")
	}
	if batch.Matches(day.AddDate(0, 0, 1), Filters{}.Key(), 20) {
		t.Error("Expected batch to be invalidated by a day change")
	}
	if batch.Matches(day, Filters{Levels: []string{"HSK1"}}.Key(), 20) {
		t.Error("Expected batch to be invalidated by a filter change")
	}
	if batch.Matches(day, Filters{}.Key(), 10) {
		t.Error("Expected batch to be invalidated by a quota change")
	}
}

func TestNewDailyBatchValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewDailyBatch(uuid.Nil, BatchModeLearning, time.Now(), "", 5, nil); err == nil {
		t.Error("Expected nil user ID to be rejected")
	}
	if _, err := NewDailyBatch(uuid.New(), BatchMode("cram"), time.Now(), "", 5, nil); err == nil {
		t.Error("Expected unknown mode to be rejected")
	}
}
