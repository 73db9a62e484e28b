package domain

import "time"

type NotificationKind string

const (
	NotificationEntry  NotificationKind = "entry"
	NotificationExit   NotificationKind = "exit"
	NotificationSystem NotificationKind = "system"
)

// NotificationEvent is a human-readable message emitted by a spot transition.
type NotificationEvent struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Timestamp string           `json:"timestamp"` // display time, "15:04:05"
	Kind      NotificationKind `json:"kind"`
	CreatedAt time.Time        `json:"created_at"`
}
