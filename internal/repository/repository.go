package repository

import (
	"context"
	"errors"
	"parking_tracker/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrInvalidTransition = errors.New("spot is not in a status that allows this operation")
var ErrDuplicateEntry = errors.New("record already exists")

// SpotRepository holds the fixed spot population. Spots are returned as
// copies; changes go through Update.
type SpotRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Spot, error)
	FindByFloor(ctx context.Context, floor string) ([]domain.Spot, error)
	FindAll(ctx context.Context) ([]domain.Spot, error)
	Update(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	Count(ctx context.Context) (int, error)
}

// HistoryRepository is the append-only ledger of completed sessions.
// There is no update and no delete.
type HistoryRepository interface {
	Append(ctx context.Context, record *domain.HistoryRecord) error
	// All returns every record, newest first.
	All(ctx context.Context) ([]domain.HistoryRecord, error)
	Count(ctx context.Context) (int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, event *domain.NotificationEvent) error
	// FindAll returns every event, newest first.
	FindAll(ctx context.Context) ([]domain.NotificationEvent, error)
	Clear(ctx context.Context) error
}
