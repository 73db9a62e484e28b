package memory

import (
	"context"
	"fmt"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/repository"
	"sync"
)

type memSpotRepository struct {
	mu    sync.RWMutex
	spots []domain.Spot
	index map[string]int
}

// NewSpotRepository keeps spots in the order given. Duplicate ids are rejected.
func NewSpotRepository(spots []domain.Spot) (repository.SpotRepository, error) {
	r := &memSpotRepository{
		spots: make([]domain.Spot, 0, len(spots)),
		index: make(map[string]int, len(spots)),
	}
	for _, s := range spots {
		if _, exists := r.index[s.ID]; exists {
			return nil, fmt.Errorf("%w: spot '%s'", repository.ErrDuplicateEntry, s.ID)
		}
		r.index[s.ID] = len(r.spots)
		r.spots = append(r.spots, s.Clone())
	}
	return r, nil
}

func (r *memSpotRepository) FindByID(_ context.Context, id string) (*domain.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	spot := r.spots[i].Clone()
	return &spot, nil
}

func (r *memSpotRepository) FindByFloor(_ context.Context, floor string) ([]domain.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spots := []domain.Spot{}
	for _, s := range r.spots {
		if s.Floor == floor {
			spots = append(spots, s.Clone())
		}
	}
	return spots, nil
}

func (r *memSpotRepository) FindAll(_ context.Context) ([]domain.Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spots := make([]domain.Spot, len(r.spots))
	for i, s := range r.spots {
		spots[i] = s.Clone()
	}
	return spots, nil
}

// Update replaces the stored spot with the same id. Id, floor and type are
// immutable and keep their stored values.
func (r *memSpotRepository) Update(_ context.Context, spot *domain.Spot) (*domain.Spot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[spot.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	updated := spot.Clone()
	updated.Floor = r.spots[i].Floor
	updated.Type = r.spots[i].Type
	r.spots[i] = updated

	out := updated.Clone()
	return &out, nil
}

func (r *memSpotRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.spots), nil
}
