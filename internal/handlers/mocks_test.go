package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
)

var errNotStubbed = errors.New("not stubbed")

type mockConnectionService struct {
	CreateConnectionFunc   func(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*models.Connection, error)
	GetConnectionFunc      func(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error)
	AcceptConnectionFunc   func(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error)
	RejectConnectionFunc   func(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error)
	BlockConnectionFunc    func(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error)
	DeleteConnectionFunc   func(ctx context.Context, id, callerID uuid.UUID) error
	ListReceivedFunc       func(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	ListSentFunc           func(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	ListAcceptedFunc       func(ctx context.Context, userID uuid.UUID) ([]models.ConnectionWithUser, error)
	GetConnectionStatsFunc func(ctx context.Context, userID uuid.UUID) (*models.ConnectionStats, error)
}

func (m *mockConnectionService) CreateConnection(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*models.Connection, error) {
	if m.CreateConnectionFunc == nil {
		return nil, errNotStubbed
	}
	return m.CreateConnectionFunc(ctx, requesterID, receiverID, message)
}

func (m *mockConnectionService) GetConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error) {
	if m.GetConnectionFunc == nil {
		return nil, errNotStubbed
	}
	return m.GetConnectionFunc(ctx, id, callerID)
}

func (m *mockConnectionService) AcceptConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error) {
	if m.AcceptConnectionFunc == nil {
		return nil, errNotStubbed
	}
	return m.AcceptConnectionFunc(ctx, id, callerID)
}

func (m *mockConnectionService) RejectConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error) {
	if m.RejectConnectionFunc == nil {
		return nil, errNotStubbed
	}
	return m.RejectConnectionFunc(ctx, id, callerID)
}

func (m *mockConnectionService) BlockConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error) {
	if m.BlockConnectionFunc == nil {
		return nil, errNotStubbed
	}
	return m.BlockConnectionFunc(ctx, id, callerID)
}

func (m *mockConnectionService) DeleteConnection(ctx context.Context, id, callerID uuid.UUID) error {
	if m.DeleteConnectionFunc == nil {
		return errNotStubbed
	}
	return m.DeleteConnectionFunc(ctx, id, callerID)
}

func (m *mockConnectionService) ListReceived(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	if m.ListReceivedFunc == nil {
		return nil, errNotStubbed
	}
	return m.ListReceivedFunc(ctx, userID, status)
}

func (m *mockConnectionService) ListSent(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	if m.ListSentFunc == nil {
		return nil, errNotStubbed
	}
	return m.ListSentFunc(ctx, userID, status)
}

func (m *mockConnectionService) ListAccepted(ctx context.Context, userID uuid.UUID) ([]models.ConnectionWithUser, error) {
	if m.ListAcceptedFunc == nil {
		return nil, errNotStubbed
	}
	return m.ListAcceptedFunc(ctx, userID)
}

func (m *mockConnectionService) GetConnectionStats(ctx context.Context, userID uuid.UUID) (*models.ConnectionStats, error) {
	if m.GetConnectionStatsFunc == nil {
		return nil, errNotStubbed
	}
	return m.GetConnectionStatsFunc(ctx, userID)
}

type mockNotificationService struct {
	CreateFunc               func(ctx context.Context, params repository.CreateNotificationParams) (*models.Notification, error)
	GetUserNotificationsFunc func(ctx context.Context, userID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error)
	GetUnreadCountFunc       func(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAsReadFunc           func(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error)
	MarkAllAsReadFunc        func(ctx context.Context, userID uuid.UUID) error
	DeleteNotificationFunc   func(ctx context.Context, id, userID uuid.UUID) error
}

func (m *mockNotificationService) Create(ctx context.Context, params repository.CreateNotificationParams) (*models.Notification, error) {
	if m.CreateFunc == nil {
		return nil, errNotStubbed
	}
	return m.CreateFunc(ctx, params)
}

func (m *mockNotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error) {
	if m.GetUserNotificationsFunc == nil {
		return nil, errNotStubbed
	}
	return m.GetUserNotificationsFunc(ctx, userID, params)
}

func (m *mockNotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.GetUnreadCountFunc == nil {
		return 0, errNotStubbed
	}
	return m.GetUnreadCountFunc(ctx, userID)
}

func (m *mockNotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	if m.MarkAsReadFunc == nil {
		return nil, errNotStubbed
	}
	return m.MarkAsReadFunc(ctx, id, userID)
}

func (m *mockNotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if m.MarkAllAsReadFunc == nil {
		return errNotStubbed
	}
	return m.MarkAllAsReadFunc(ctx, userID)
}

func (m *mockNotificationService) DeleteNotification(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteNotificationFunc == nil {
		return errNotStubbed
	}
	return m.DeleteNotificationFunc(ctx, id, userID)
}
