package memory

import (
	"context"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/repository"
	"sync"
)

type memNotificationRepository struct {
	mu     sync.RWMutex
	events []domain.NotificationEvent // oldest first
}

func NewNotificationRepository() repository.NotificationRepository {
	return &memNotificationRepository{}
}

func (r *memNotificationRepository) Create(_ context.Context, event *domain.NotificationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *memNotificationRepository) FindAll(_ context.Context) ([]domain.NotificationEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.NotificationEvent, len(r.events))
	for i, e := range r.events {
		out[len(r.events)-1-i] = e
	}
	return out, nil
}

func (r *memNotificationRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	return nil
}
