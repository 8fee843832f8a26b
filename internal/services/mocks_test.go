package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
)

// fakeConnectionRepo implements ConnectionRepositoryInterface with per-method
// hooks. Unset hooks fail so a test only stubs what it expects to run.
type fakeConnectionRepo struct {
	CreateFunc        func(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*models.Connection, error)
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Connection, error)
	FindBetweenFunc   func(ctx context.Context, a, b uuid.UUID) (*models.Connection, error)
	ExistsBetweenFunc func(ctx context.Context, a, b uuid.UUID) (bool, error)
	FindReceivedFunc  func(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	FindSentFunc      func(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error)
	FindAcceptedFunc  func(ctx context.Context, userID uuid.UUID) ([]models.ConnectionWithUser, error)
	UpdateStatusFunc  func(ctx context.Context, id uuid.UUID, from, to models.ConnectionStatus) (bool, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
}

var errUnexpectedCall = errors.New("unexpected repository call")

func (f *fakeConnectionRepo) Create(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*models.Connection, error) {
	if f.CreateFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.CreateFunc(ctx, requesterID, receiverID, message)
}

func (f *fakeConnectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	if f.FindByIDFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.FindByIDFunc(ctx, id)
}

func (f *fakeConnectionRepo) FindBetween(ctx context.Context, a, b uuid.UUID) (*models.Connection, error) {
	if f.FindBetweenFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.FindBetweenFunc(ctx, a, b)
}

func (f *fakeConnectionRepo) ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if f.ExistsBetweenFunc == nil {
		return false, errUnexpectedCall
	}
	return f.ExistsBetweenFunc(ctx, a, b)
}

func (f *fakeConnectionRepo) FindReceived(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	if f.FindReceivedFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.FindReceivedFunc(ctx, userID, status)
}

func (f *fakeConnectionRepo) FindSent(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	if f.FindSentFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.FindSentFunc(ctx, userID, status)
}

func (f *fakeConnectionRepo) FindAccepted(ctx context.Context, userID uuid.UUID) ([]models.ConnectionWithUser, error) {
	if f.FindAcceptedFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.FindAcceptedFunc(ctx, userID)
}

func (f *fakeConnectionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ConnectionStatus) (bool, error) {
	if f.UpdateStatusFunc == nil {
		return false, errUnexpectedCall
	}
	return f.UpdateStatusFunc(ctx, id, from, to)
}

func (f *fakeConnectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFunc == nil {
		return errUnexpectedCall
	}
	return f.DeleteFunc(ctx, id)
}

// fakeNotificationRepo implements NotificationRepositoryInterface.
type fakeNotificationRepo struct {
	CreateFunc      func(ctx context.Context, params repository.CreateNotificationParams) (*models.Notification, error)
	FindByUserFunc  func(ctx context.Context, userID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error)
	FindByIDFunc    func(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error)
	CountUnreadFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	MarkReadFunc    func(ctx context.Context, id, userID uuid.UUID) error
	MarkAllReadFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteFunc      func(ctx context.Context, id, userID uuid.UUID) error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, params repository.CreateNotificationParams) (*models.Notification, error) {
	if f.CreateFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.CreateFunc(ctx, params)
}

func (f *fakeNotificationRepo) FindByUser(ctx context.Context, userID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error) {
	if f.FindByUserFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.FindByUserFunc(ctx, userID, params)
}

func (f *fakeNotificationRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	if f.FindByIDFunc == nil {
		return nil, errUnexpectedCall
	}
	return f.FindByIDFunc(ctx, id, userID)
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if f.CountUnreadFunc == nil {
		return 0, errUnexpectedCall
	}
	return f.CountUnreadFunc(ctx, userID)
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if f.MarkReadFunc == nil {
		return errUnexpectedCall
	}
	return f.MarkReadFunc(ctx, id, userID)
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if f.MarkAllReadFunc == nil {
		return errUnexpectedCall
	}
	return f.MarkAllReadFunc(ctx, userID)
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if f.DeleteFunc == nil {
		return errUnexpectedCall
	}
	return f.DeleteFunc(ctx, id, userID)
}

// notifierCall records one CreateAndEmit invocation.
type notifierCall struct {
	recipientID uuid.UUID
	nType       models.NotificationType
	data        map[string]any
}

type fakeNotifier struct {
	calls []notifierCall
	err   error
}

func (f *fakeNotifier) CreateAndEmit(ctx context.Context, channel LiveChannel, userID uuid.UUID, nType models.NotificationType, title, message string, data map[string]any) (*models.Notification, error) {
	f.calls = append(f.calls, notifierCall{recipientID: userID, nType: nType, data: data})
	if f.err != nil {
		return nil, f.err
	}
	return &models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    nType,
		Title:   title,
		Message: message,
		Data:    data,
	}, nil
}

type fakeLiveChannel struct {
	connected bool
	emitErr   error
	emitted   []uuid.UUID
}

func (f *fakeLiveChannel) Emit(userID uuid.UUID, payload any) error {
	f.emitted = append(f.emitted, userID)
	return f.emitErr
}

func (f *fakeLiveChannel) IsConnected(userID uuid.UUID) bool {
	return f.connected
}

type fakeInvalidator struct {
	invalidated []uuid.UUID
	result      bool
}

func (f *fakeInvalidator) InvalidateRecommendations(ctx context.Context, userID uuid.UUID) bool {
	f.invalidated = append(f.invalidated, userID)
	return f.result
}

func pendingConnection(requesterID, receiverID uuid.UUID) *models.Connection {
	return connectionWithStatus(requesterID, receiverID, models.ConnectionStatusPending)
}

func connectionWithStatus(requesterID, receiverID uuid.UUID, status models.ConnectionStatus) *models.Connection {
	now := time.Now()
	return &models.Connection{
		ID:          uuid.New(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
