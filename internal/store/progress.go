package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// ProgressStore defines the interface for word progress persistence.
// The engine creates records lazily on first interaction, so callers must
// treat ErrProgressNotFound as "no interaction yet", not as a failure.
type ProgressStore interface {
	// Get retrieves the progress record for a user and word.
	// Returns ErrProgressNotFound if the user has never interacted with
	// the word.
	Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error)

	// Upsert saves a progress record, inserting it on first interaction
	// and replacing it afterwards. It handles domain validation internally
	// and returns validation errors wrapped in ErrInvalidEntity.
	Upsert(ctx context.Context, progress *domain.WordProgress) error

	// AllForUser returns every progress record belonging to a user.
	// Used to compute due sets and aggregate statistics. Returns an empty
	// slice, not an error, for a user with no records.
	AllForUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error)

	// WithTx returns a ProgressStore instance bound to the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ProgressStore
}
