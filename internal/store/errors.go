package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDuplicate is returned when an insert would violate a uniqueness
	// constraint in the store.
	ErrDuplicate = errors.New("duplicate entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrProgressNotFound indicates that no progress record exists for the
	// requested user and word.
	ErrProgressNotFound = fmt.Errorf("%w: word progress", ErrNotFound)

	// ErrDailyStatsNotFound indicates that no stats row exists for the
	// requested user and day.
	ErrDailyStatsNotFound = fmt.Errorf("%w: daily stats", ErrNotFound)

	// ErrStreakNotFound indicates that the user has no streak record yet.
	ErrStreakNotFound = fmt.Errorf("%w: streak state", ErrNotFound)

	// ErrBatchNotFound indicates that no cached batch exists for the
	// requested user, mode, and day.
	ErrBatchNotFound = fmt.Errorf("%w: daily batch", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "word_progress", "daily_batch")
	Operation string // The operation that failed (e.g., "get", "upsert")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
