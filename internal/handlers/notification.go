package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/services"
)

type NotificationHandler struct {
	notifications services.NotificationServiceInterface
}

func NewNotificationHandler(notifications services.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

type NotificationResponse struct {
	Notification *models.Notification `json:"notification,omitempty"`
	Message      string               `json:"message,omitempty"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	params := repository.NotificationListParams{
		Limit:      queryInt(r, "limit"),
		Offset:     queryInt(r, "offset"),
		UnreadOnly: r.URL.Query().Get("unread") == "true",
	}

	notifications, err := h.notifications.GetUserNotifications(r.Context(), userID, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NotificationListResponse{Notifications: notifications})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	count, err := h.notifications.GetUnreadCount(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	notification, err := h.notifications.MarkAsRead(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NotificationResponse{Notification: notification})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.notifications.MarkAllAsRead(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NotificationResponse{Message: "All notifications marked as read"})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.notifications.DeleteNotification(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NotificationResponse{Message: "Notification deleted"})
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
