package study

import (
	"time"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// Clock supplies the current time to the engine. It is injected so tests
// can pin the calendar day; the engine itself never reads the wall clock
// directly.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// Today returns the current calendar date with the time portion
	// zeroed. All day-boundary decisions use this value.
	Today() time.Time
}

// realClock reads the system clock in the local timezone. The user's
// local calendar date is the day boundary everywhere in the engine.
type realClock struct{}

// NewClock returns a Clock backed by the system clock.
func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Today() time.Time {
	return domain.DateOnly(time.Now())
}
