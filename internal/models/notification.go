package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeConnectionRequest  NotificationType = "connection_request"
	NotificationTypeConnectionAccepted NotificationType = "connection_accepted"
	NotificationTypeConnectionRejected NotificationType = "connection_rejected"
	NotificationTypeConnectionBlocked  NotificationType = "connection_blocked"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeConnectionRequest, NotificationTypeConnectionAccepted,
		NotificationTypeConnectionRejected, NotificationTypeConnectionBlocked:
		return true
	}
	return false
}

// Notification is owned exclusively by its recipient; the actor that caused
// it is only referenced inside Data.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// ConnectionEventData is the payload shape for every connection lifecycle
// notification type.
type ConnectionEventData struct {
	ConnectionID uuid.UUID        `json:"connection_id"`
	ActorID      uuid.UUID        `json:"actor_id"`
	Status       ConnectionStatus `json:"status"`
}

func (d ConnectionEventData) Map() map[string]any {
	return map[string]any{
		"connection_id": d.ConnectionID.String(),
		"actor_id":      d.ActorID.String(),
		"status":        string(d.Status),
	}
}
