package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

func TestNextIndex(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  int
		correct  bool
		expected int
	}{
		{
			name:     "correct answer advances one rung",
			current:  2,
			correct:  true,
			expected: 3,
		},
		{
			name:     "correct answer at the top stays at the top",
			current:  params.MaxIndex(),
			correct:  true,
			expected: params.MaxIndex(),
		},
		{
			name:     "wrong answer resets to the first rung",
			current:  5,
			correct:  false,
			expected: 0,
		},
		{
			name:     "wrong answer at the bottom stays at the bottom",
			current:  0,
			correct:  false,
			expected: 0,
		},
		{
			name:     "negative index is clamped before advancing",
			current:  -3,
			correct:  true,
			expected: 1,
		},
		{
			name:     "out-of-range index is clamped to the top",
			current:  params.MaxIndex() + 10,
			correct:  true,
			expected: params.MaxIndex(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextIndex(tc.current, tc.correct, params)

			if got != tc.expected {
				t.Errorf("Expected index %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestNextIndexMonotonicity(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	for i := 0; i <= params.MaxIndex(); i++ {
		advanced := nextIndex(i, true, params)
		if advanced < i {
			t.Errorf("nextIndex(%d, true) = %d went backwards", i, advanced)
		}
		if advanced > params.MaxIndex() {
			t.Errorf("nextIndex(%d, true) = %d exceeds max index %d", i, advanced, params.MaxIndex())
		}
		if reset := nextIndex(i, false, params); reset != 0 {
			t.Errorf("nextIndex(%d, false) = %d, want 0", i, reset)
		}
	}
}

func TestReviewDateAt(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		index    int
		today    time.Time
		expected time.Time
	}{
		{
			name:     "first rung schedules one day out",
			index:    0,
			today:    time.Date(2024, 3, 10, 15, 42, 7, 0, time.UTC),
			expected: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "third rung schedules three days out",
			index:    2,
			today:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "top rung schedules fifty-five days out",
			index:    params.MaxIndex(),
			today:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "out-of-range index clamps to the top rung",
			index:    params.MaxIndex() + 5,
			today:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := reviewDateAt(tc.index, tc.today, params)

			if !got.Equal(tc.expected) {
				t.Errorf("Expected date %v, got %v", tc.expected, got)
			}

			// Same inputs must always produce the same date.
			if again := reviewDateAt(tc.index, tc.today, params); !again.Equal(got) {
				t.Errorf("reviewDateAt is not deterministic: %v vs %v", got, again)
			}
		})
	}
}

func TestIsMastered(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	if !isMastered(params.MaxIndex(), params) {
		t.Errorf("Expected index %d to be mastered", params.MaxIndex())
	}
	if isMastered(params.MaxIndex()-1, params) {
		t.Errorf("Expected index %d to not be mastered", params.MaxIndex()-1)
	}
	if isMastered(0, params) {
		t.Error("Expected index 0 to not be mastered")
	}
}

func TestStateOf(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name        string
		index       int
		everCorrect bool
		expected    domain.WordState
	}{
		{
			name:        "never answered correctly is learning",
			index:       0,
			everCorrect: false,
			expected:    domain.WordStateLearning,
		},
		{
			name:        "reset word with correct history is reviewing",
			index:       0,
			everCorrect: true,
			expected:    domain.WordStateReviewing,
		},
		{
			name:        "mid-ladder word is reviewing",
			index:       4,
			everCorrect: true,
			expected:    domain.WordStateReviewing,
		},
		{
			name:        "top of the ladder is mastered",
			index:       params.MaxIndex(),
			everCorrect: true,
			expected:    domain.WordStateMastered,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := stateOf(tc.index, tc.everCorrect, params)

			if got != tc.expected {
				t.Errorf("Expected state %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestApplyOutcomeScenario(t *testing.T) {
	t.Parallel()

	// Ladder [1,2,3,5,8]: a word at index 2 answered correctly on day 10
	// moves to index 3 and is due on day 15; answered incorrectly it
	// resets to index 0 and is due on day 11.
	params, err := NewParams([]int{1, 2, 3, 5, 8})
	if err != nil {
		t.Fatalf("NewParams returned error: %v", err)
	}

	day10 := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
	base := &domain.WordProgress{
		UserID:        uuid.New(),
		WordID:        uuid.New(),
		IntervalIndex: 2,
		CorrectCount:  2,
	}

	correct := applyOutcome(base, true, day10, day10, params)
	if correct.IntervalIndex != 3 {
		t.Errorf("Expected interval index 3, got %d", correct.IntervalIndex)
	}
	wantDue := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if correct.NextReviewAt == nil || !correct.NextReviewAt.Equal(wantDue) {
		t.Errorf("Expected next review %v, got %v", wantDue, correct.NextReviewAt)
	}
	if correct.CorrectCount != 3 {
		t.Errorf("Expected correct count 3, got %d", correct.CorrectCount)
	}

	wrong := applyOutcome(base, false, day10, day10, params)
	if wrong.IntervalIndex != 0 {
		t.Errorf("Expected interval index 0, got %d", wrong.IntervalIndex)
	}
	wantDue = time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	if wrong.NextReviewAt == nil || !wrong.NextReviewAt.Equal(wantDue) {
		t.Errorf("Expected next review %v, got %v", wantDue, wrong.NextReviewAt)
	}
	if wrong.IncorrectCount != 1 {
		t.Errorf("Expected incorrect count 1, got %d", wrong.IncorrectCount)
	}

	// Input record must be untouched.
	if base.IntervalIndex != 2 || base.CorrectCount != 2 || base.NextReviewAt != nil {
		t.Error("applyOutcome modified its input")
	}
}
