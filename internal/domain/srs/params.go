package srs

import (
	"errors"
)

// Parameter validation errors
var (
	ErrEmptyIntervals        = errors.New("interval ladder cannot be empty")
	ErrNonPositiveInterval   = errors.New("interval ladder values must be positive")
	ErrNonIncreasingInterval = errors.New("interval ladder values must be strictly increasing")
)

// DefaultIntervals is the canonical ladder of review gaps in days.
// A word climbs one rung per correct answer and falls back to the first
// rung on a wrong answer; reaching the last rung means mastery.
var DefaultIntervals = []int{1, 2, 3, 5, 8, 13, 21, 34, 55}

// Params defines the configurable parameters for the scheduling algorithm.
type Params struct {
	// Intervals is the ladder of review gaps in days, strictly increasing.
	Intervals []int
}

// NewDefaultParams creates a Params instance with the default ladder.
func NewDefaultParams() *Params {
	return &Params{
		Intervals: append([]int(nil), DefaultIntervals...),
	}
}

// NewParams creates a Params instance with a custom ladder.
// Returns an error if the ladder is empty, contains non-positive values,
// or is not strictly increasing.
func NewParams(intervals []int) (*Params, error) {
	if len(intervals) == 0 {
		return nil, ErrEmptyIntervals
	}

	for i, days := range intervals {
		if days <= 0 {
			return nil, ErrNonPositiveInterval
		}
		if i > 0 && days <= intervals[i-1] {
			return nil, ErrNonIncreasingInterval
		}
	}

	return &Params{
		Intervals: append([]int(nil), intervals...),
	}, nil
}

// MaxIndex returns the highest valid interval index, the mastery threshold.
func (p *Params) MaxIndex() int {
	return len(p.Intervals) - 1
}
