package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
)

// ErrNotificationNotFound covers both a missing row and a row owned by a
// different user; lookups are keyed on (id, user_id) so the two cases are
// indistinguishable by construction.
var ErrNotificationNotFound = errors.New("notification row not found")

type CreateNotificationParams struct {
	UserID  uuid.UUID
	Type    models.NotificationType
	Title   string
	Message string
	Data    map[string]any
}

type NotificationListParams struct {
	Limit      int
	Offset     int
	UnreadOnly bool
}

type NotificationRepository struct {
	db DB
}

func NewNotificationRepository(db DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, params CreateNotificationParams) (*models.Notification, error) {
	data := params.Data
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding notification data: %w", err)
	}

	n := &models.Notification{}
	var raw []byte
	err = r.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, type, title, message, data, is_read)
		 VALUES ($1, $2, $3, $4, $5, false)
		 RETURNING id, user_id, type, title, message, data, is_read, created_at`,
		params.UserID, params.Type, params.Title, params.Message, payload,
	).Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &raw, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting notification: %w", err)
	}
	n.Data = decodeData(raw)
	return n, nil
}

// FindByUser returns the recipient's inbox, newest first. Limit is clamped
// to [1,100] with a default of 20.
func (r *NotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, params NotificationListParams) ([]models.Notification, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, user_id, type, title, message, data, is_read, created_at
	          FROM notifications
	          WHERE user_id = $1`
	if params.UnreadOnly {
		query += " AND is_read = false"
	}
	query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var raw []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &raw, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		n.Data = decodeData(raw)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// FindByID looks up a notification by the composite (id, user_id).
func (r *NotificationRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	n := &models.Notification{}
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, type, title, message, data, is_read, created_at
		 FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &raw, &n.IsRead, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding notification: %w", err)
	}
	n.Data = decodeData(raw)
	return n, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		"UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false",
		userID,
	)
	if err != nil {
		return fmt.Errorf("marking all notifications read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM notifications WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// decodeData always yields a structured object, regardless of how the column
// was serialized. Undecodable or null payloads become an empty map.
func decodeData(raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return map[string]any{}
	}
	return data
}
