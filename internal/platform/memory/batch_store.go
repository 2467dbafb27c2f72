package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/store"
)

// batchKey identifies the single batch slot per (user, mode).
type batchKey struct {
	userID uuid.UUID
	mode   domain.BatchMode
}

// BatchStore is an in-memory implementation of store.BatchStore.
// A single map write per Put gives the same atomic-replace semantics the
// database backend gets from its upsert.
type BatchStore struct {
	mu      sync.RWMutex
	batches map[batchKey]*domain.DailyBatch
}

// NewBatchStore creates an empty in-memory batch store.
func NewBatchStore() *BatchStore {
	return &BatchStore{
		batches: make(map[batchKey]*domain.DailyBatch),
	}
}

// Ensure BatchStore implements store.BatchStore interface
var _ store.BatchStore = (*BatchStore)(nil)

// Get implements store.BatchStore.Get
func (s *BatchStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	mode domain.BatchMode,
	day time.Time,
	filterKey string,
) (*domain.DailyBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, ok := s.batches[batchKey{userID: userID, mode: mode}]
	if !ok || !domain.SameDay(batch.Day, day) || batch.FilterKey != filterKey {
		return nil, store.ErrBatchNotFound
	}
	return cloneBatch(batch), nil
}

// Put implements store.BatchStore.Put
func (s *BatchStore) Put(ctx context.Context, batch *domain.DailyBatch) error {
	if err := batch.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches[batchKey{userID: batch.UserID, mode: batch.Mode}] = cloneBatch(batch)
	return nil
}

// WithTx implements store.BatchStore.WithTx
// The in-memory store has no transaction support, so it returns itself.
func (s *BatchStore) WithTx(tx *sql.Tx) store.BatchStore {
	return s
}

func cloneBatch(batch *domain.DailyBatch) *domain.DailyBatch {
	copied := *batch
	copied.WordIDs = append([]uuid.UUID(nil), batch.WordIDs...)
	return &copied
}
