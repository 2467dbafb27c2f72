package srs

import (
	"errors"
	"time"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress = errors.New("word progress cannot be nil")
)

// Service defines the interface for interval ladder operations.
type Service interface {
	// Apply computes new progress for a review outcome. The returned
	// record is a new instance; the input is never modified.
	Apply(progress *domain.WordProgress, correct bool, now time.Time) (*domain.WordProgress, error)

	// ReviewDate returns the next review date for an interval index,
	// counted from today at day granularity.
	ReviewDate(index int, today time.Time) time.Time

	// IsMastered reports whether an interval index is at the top of the
	// ladder.
	IsMastered(index int) bool

	// StateOf derives the lifecycle state for an interval index and
	// answer history.
	StateOf(index int, everCorrect bool) domain.WordState

	// MaxIndex returns the mastery threshold index.
	MaxIndex() int
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with the default ladder.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Apply implements the Service interface.
func (s *defaultService) Apply(
	progress *domain.WordProgress,
	correct bool,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	return applyOutcome(progress, correct, now, now, s.params), nil
}

// ReviewDate implements the Service interface.
func (s *defaultService) ReviewDate(index int, today time.Time) time.Time {
	return reviewDateAt(index, today, s.params)
}

// IsMastered implements the Service interface.
func (s *defaultService) IsMastered(index int) bool {
	return isMastered(index, s.params)
}

// StateOf implements the Service interface.
func (s *defaultService) StateOf(index int, everCorrect bool) domain.WordState {
	return stateOf(index, everCorrect, s.params)
}

// MaxIndex implements the Service interface.
func (s *defaultService) MaxIndex() int {
	return s.params.MaxIndex()
}
