package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

func TestServiceApply(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)

	progress, err := domain.NewWordProgress(uuid.New(), uuid.New(), now)
	if err != nil {
		t.Fatalf("NewWordProgress returned error: %v", err)
	}

	updated, err := service.Apply(progress, true, now)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if updated.IntervalIndex != 1 {
		t.Errorf("Expected interval index 1, got %d", updated.IntervalIndex)
	}
	if updated.CorrectCount != 1 {
		t.Errorf("Expected correct count 1, got %d", updated.CorrectCount)
	}
	if updated.NextReviewAt == nil {
		t.Fatal("Expected a next review date to be set")
	}
	wantDue := time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC)
	if !updated.NextReviewAt.Equal(wantDue) {
		t.Errorf("Expected next review %v, got %v", wantDue, updated.NextReviewAt)
	}
	if !updated.LastReviewedAt.Equal(now) {
		t.Errorf("Expected last reviewed %v, got %v", now, updated.LastReviewedAt)
	}

	// Original must be untouched.
	if progress.IntervalIndex != 0 || progress.CorrectCount != 0 {
		t.Error("Apply modified its input")
	}
}

func TestServiceApplyNilProgress(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	_, err := service.Apply(nil, true, time.Now().UTC())
	if !errors.Is(err, ErrNilProgress) {
		t.Errorf("Expected ErrNilProgress, got %v", err)
	}
}

func TestServiceApplyClimbsToMastery(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	progress, err := domain.NewWordProgress(uuid.New(), uuid.New(), now)
	if err != nil {
		t.Fatalf("NewWordProgress returned error: %v", err)
	}

	// Answer correctly enough times to reach the top of the ladder, then
	// keep answering: the index must never exceed the mastery threshold.
	for i := 0; i < service.MaxIndex()+3; i++ {
		progress, err = service.Apply(progress, true, now)
		if err != nil {
			t.Fatalf("Apply returned error on step %d: %v", i, err)
		}
	}

	if progress.IntervalIndex != service.MaxIndex() {
		t.Errorf("Expected interval index %d, got %d", service.MaxIndex(), progress.IntervalIndex)
	}
	if !service.IsMastered(progress.IntervalIndex) {
		t.Error("Expected word to be mastered")
	}
	if got := service.StateOf(progress.IntervalIndex, progress.EverAnsweredCorrectly()); got != domain.WordStateMastered {
		t.Errorf("Expected state mastered, got %q", got)
	}

	// One wrong answer sends it all the way back down.
	progress, err = service.Apply(progress, false, now)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if progress.IntervalIndex != 0 {
		t.Errorf("Expected interval index 0 after lapse, got %d", progress.IntervalIndex)
	}
	if got := service.StateOf(progress.IntervalIndex, progress.EverAnsweredCorrectly()); got != domain.WordStateReviewing {
		t.Errorf("Expected state reviewing after lapse, got %q", got)
	}
}

func TestServiceReviewDate(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	today := time.Date(2024, 7, 4, 23, 59, 59, 0, time.UTC)
	got := service.ReviewDate(0, today)
	want := time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
