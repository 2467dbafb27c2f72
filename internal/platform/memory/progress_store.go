package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/store"
)

// progressKey identifies one (user, word) progress record.
type progressKey struct {
	userID uuid.UUID
	wordID uuid.UUID
}

// ProgressStore is an in-memory implementation of store.ProgressStore.
type ProgressStore struct {
	mu      sync.RWMutex
	records map[progressKey]*domain.WordProgress
}

// NewProgressStore creates an empty in-memory progress store.
func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		records: make(map[progressKey]*domain.WordProgress),
	}
}

// Ensure ProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*ProgressStore)(nil)

// Get implements store.ProgressStore.Get
func (s *ProgressStore) Get(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.WordProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	progress, ok := s.records[progressKey{userID: userID, wordID: wordID}]
	if !ok {
		return nil, store.ErrProgressNotFound
	}
	return progress.Clone(), nil
}

// Upsert implements store.ProgressStore.Upsert
func (s *ProgressStore) Upsert(ctx context.Context, progress *domain.WordProgress) error {
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a clone so later caller mutations cannot reach stored state.
	s.records[progressKey{userID: progress.UserID, wordID: progress.WordID}] = progress.Clone()
	return nil
}

// AllForUser implements store.ProgressStore.AllForUser
func (s *ProgressStore) AllForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.WordProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*domain.WordProgress, 0)
	for key, progress := range s.records {
		if key.userID == userID {
			records = append(records, progress.Clone())
		}
	}
	return records, nil
}

// WithTx implements store.ProgressStore.WithTx
// The in-memory store has no transaction support, so it returns itself.
func (s *ProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return s
}
