package service

import (
	"context"
	"fmt"
	"log"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/repository"
	"sync"
	"time"

	"github.com/google/uuid"
)

const displayTimeLayout = "15:04:05"

// Observer is told about every notification after it has been stored.
// Notify must not block.
type Observer interface {
	Notify(event domain.NotificationEvent)
}

type ObserverFunc func(event domain.NotificationEvent)

func (f ObserverFunc) Notify(event domain.NotificationEvent) { f(event) }

// NotificationSink receives the messages spot transitions emit.
type NotificationSink interface {
	Record(ctx context.Context, message string, kind domain.NotificationKind) (*domain.NotificationEvent, error)
}

type NotificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time

	mu        sync.RWMutex
	observers []Observer
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

func (s *NotificationService) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *NotificationService) Record(ctx context.Context, message string, kind domain.NotificationKind) (*domain.NotificationEvent, error) {
	now := s.now()
	event := &domain.NotificationEvent{
		ID:        uuid.NewString(),
		Message:   message,
		Timestamp: now.Format(displayTimeLayout),
		Kind:      kind,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()
	for _, o := range observers {
		o.Notify(*event)
	}
	return event, nil
}

func (s *NotificationService) List(ctx context.Context) ([]domain.NotificationEvent, error) {
	return s.repo.FindAll(ctx)
}

func (s *NotificationService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	log.Println("Service: notifications cleared")
	return nil
}
