package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
)

// NotificationService manages the durable inbox. Ownership is enforced by
// the repository's composite (id, user_id) lookups, so a foreign row and a
// missing row are the same ErrNotificationNotFound.
type NotificationService struct {
	repo NotificationRepositoryInterface
}

func NewNotificationService(repo NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, params repository.CreateNotificationParams) (*models.Notification, error) {
	if !params.Type.Valid() {
		return nil, ErrInvalidNotificationType
	}

	n, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	return n, nil
}

// GetUserNotifications returns the recipient's inbox page. Data is always a
// structured, non-nil object regardless of how the row was serialized.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error) {
	notifications, err := s.repo.FindByUser(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	for i := range notifications {
		if notifications[i].Data == nil {
			notifications[i].Data = map[string]any{}
		}
	}
	return notifications, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead marks the notification read and returns it. Idempotent: an
// already-read notification is returned unchanged without issuing a write.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	n, err := s.repo.FindByID(ctx, id, userID)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading notification: %w", err)
	}

	if n.IsRead {
		return n, nil
	}

	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("marking notification read: %w", err)
	}

	n.IsRead = true
	return n, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("marking all notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes a notification owned by userID.
func (s *NotificationService) DeleteNotification(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("loading notification: %w", err)
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("deleting notification: %w", err)
	}
	return nil
}
