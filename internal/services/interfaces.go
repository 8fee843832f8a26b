package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
)

// ConnectionRepositoryInterface is the persistence contract the connection
// service depends on.
type ConnectionRepositoryInterface interface {
	Create(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*models.Connection, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Connection, error)
	FindBetween(ctx context.Context, a, b uuid.UUID) (*models.Connection, error)
	ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
	FindReceived(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	FindSent(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	FindAccepted(ctx context.Context, userID uuid.UUID) ([]models.ConnectionWithUser, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ConnectionStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationRepositoryInterface is the persistence contract the
// notification service depends on.
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, params repository.CreateNotificationParams) (*models.Notification, error)
	FindByUser(ctx context.Context, userID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error)
	FindByID(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// NotificationServiceInterface defines the contract for inbox operations.
type NotificationServiceInterface interface {
	Create(ctx context.Context, params repository.CreateNotificationParams) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, userID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	DeleteNotification(ctx context.Context, id, userID uuid.UUID) error
}

// LiveChannel is the two-method capability the dispatcher needs from a push
// transport. Delivery over it is best-effort; the persisted inbox is the
// durable path.
type LiveChannel interface {
	Emit(userID uuid.UUID, payload any) error
	IsConnected(userID uuid.UUID) bool
}

// Notifier is the fan-out contract the connection service uses after a
// lifecycle transition.
type Notifier interface {
	CreateAndEmit(ctx context.Context, channel LiveChannel, userID uuid.UUID, nType models.NotificationType, title, message string, data map[string]any) (*models.Notification, error)
}

// RecommendationInvalidator drops the cached per-user recommendation keys
// after a connection mutation. Failures are non-fatal.
type RecommendationInvalidator interface {
	InvalidateRecommendations(ctx context.Context, userID uuid.UUID) bool
}

// ConnectionServiceInterface defines the contract for connection lifecycle
// operations used by the caller boundary.
type ConnectionServiceInterface interface {
	CreateConnection(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*models.Connection, error)
	GetConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error)
	AcceptConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error)
	RejectConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error)
	BlockConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error)
	DeleteConnection(ctx context.Context, id, callerID uuid.UUID) error
	ListReceived(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	ListSent(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]models.ConnectionWithUser, error)
	GetConnectionStats(ctx context.Context, userID uuid.UUID) (*models.ConnectionStats, error)
}
