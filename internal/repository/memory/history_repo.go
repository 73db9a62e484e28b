package memory

import (
	"context"
	"fmt"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/repository"
	"sync"
)

// Records are stored oldest first so Append stays O(1) amortized; reads
// reverse them.
type memHistoryRepository struct {
	mu      sync.RWMutex
	records []domain.HistoryRecord
	ids     map[int64]struct{}
}

func NewHistoryRepository() repository.HistoryRepository {
	return &memHistoryRepository{ids: make(map[int64]struct{})}
}

func (r *memHistoryRepository) Append(_ context.Context, record *domain.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[record.ID.Int64()]; exists {
		return fmt.Errorf("%w: history record %s", repository.ErrDuplicateEntry, record.ID)
	}
	r.ids[record.ID.Int64()] = struct{}{}
	r.records = append(r.records, *record)
	return nil
}

func (r *memHistoryRepository) All(_ context.Context) ([]domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.HistoryRecord, len(r.records))
	for i, rec := range r.records {
		out[len(r.records)-1-i] = rec
	}
	return out, nil
}

func (r *memHistoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}
