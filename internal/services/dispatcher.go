package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/logging"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
)

// Dispatcher couples the durable inbox with a live push channel. The two
// phases carry different guarantees: the durable create must succeed for the
// call to succeed; the push is fire-and-forget with no ack and no retry. A
// recipient that misses the push reads the inbox on their next poll.
type Dispatcher struct {
	notifications NotificationServiceInterface
}

func NewDispatcher(notifications NotificationServiceInterface) *Dispatcher {
	return &Dispatcher{notifications: notifications}
}

// NotificationEvent is the payload pushed over the live channel.
type NotificationEvent struct {
	Event        string               `json:"event"`
	Notification *models.Notification `json:"notification"`
}

// CreateAndEmit persists the notification, then pushes it to the recipient
// if the channel reports them connected. Push failures are logged, never
// propagated, and never roll back the persisted row.
func (d *Dispatcher) CreateAndEmit(ctx context.Context, channel LiveChannel, userID uuid.UUID, nType models.NotificationType, title, message string, data map[string]any) (*models.Notification, error) {
	n, err := d.notifications.Create(ctx, repository.CreateNotificationParams{
		UserID:  userID,
		Type:    nType,
		Title:   title,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return nil, err
	}

	if channel == nil || !channel.IsConnected(userID) {
		logging.Debug("Recipient not connected, skipping live push", map[string]interface{}{
			"user_id":         userID.String(),
			"notification_id": n.ID.String(),
		})
		return n, nil
	}

	if err := channel.Emit(userID, NotificationEvent{Event: "notification", Notification: n}); err != nil {
		logging.Warn("Live push failed, notification remains in inbox", map[string]interface{}{
			"error":           err.Error(),
			"user_id":         userID.String(),
			"notification_id": n.ID.String(),
		})
	}

	return n, nil
}
