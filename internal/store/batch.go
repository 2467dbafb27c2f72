package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// BatchStore defines the interface for cached daily batch persistence.
// At most one batch exists per (user, mode); Put replaces any previous
// batch for that key in a single atomic write, which is what keeps
// concurrent recomputations from interleaving partial state.
type BatchStore interface {
	// Get retrieves the cached batch for a user and mode, if it was
	// computed for the given day and filter key.
	// Returns ErrBatchNotFound when no current batch exists.
	Get(
		ctx context.Context,
		userID uuid.UUID,
		mode domain.BatchMode,
		day time.Time,
		filterKey string,
	) (*domain.DailyBatch, error)

	// Put stores a batch, atomically replacing any existing batch for the
	// same (user, mode) regardless of its day or filters.
	Put(ctx context.Context, batch *domain.DailyBatch) error

	// WithTx returns a BatchStore instance bound to the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) BatchStore
}
