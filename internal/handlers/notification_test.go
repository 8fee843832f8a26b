package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/services"
)

func testNotification(userID uuid.UUID) models.Notification {
	return models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      models.NotificationTypeConnectionRequest,
		Title:     "New connection request",
		Data:      map[string]any{},
		CreatedAt: time.Now(),
	}
}

func TestNotificationHandler_List_Unauthenticated(t *testing.T) {
	handler := NewNotificationHandler(&mockNotificationService{})

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	rr := httptest.NewRecorder()
	handler.List(rr, req)
	assertErrorResponse(t, rr, http.StatusUnauthorized, "Authentication required")
}

func TestNotificationHandler_List_PassesParams(t *testing.T) {
	userID := uuid.New()
	var gotParams repository.NotificationListParams
	handler := NewNotificationHandler(&mockNotificationService{GetUserNotificationsFunc: func(ctx context.Context, uID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error) {
		gotParams = params
		return []models.Notification{testNotification(uID)}, nil
	}})

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/notifications?limit=10&offset=20&unread=true", nil), userID)
	rr := httptest.NewRecorder()
	handler.List(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotParams.Limit != 10 || gotParams.Offset != 20 || !gotParams.UnreadOnly {
		t.Fatalf("unexpected params: %+v", gotParams)
	}
}

func TestNotificationHandler_List_BadPaginationIgnored(t *testing.T) {
	var gotParams repository.NotificationListParams
	handler := NewNotificationHandler(&mockNotificationService{GetUserNotificationsFunc: func(ctx context.Context, uID uuid.UUID, params repository.NotificationListParams) ([]models.Notification, error) {
		gotParams = params
		return []models.Notification{}, nil
	}})

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/notifications?limit=abc&offset=-3", nil), uuid.New())
	rr := httptest.NewRecorder()
	handler.List(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotParams.Limit != 0 || gotParams.Offset != 0 {
		t.Fatalf("expected zeroed pagination, got %+v", gotParams)
	}
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	handler := NewNotificationHandler(&mockNotificationService{GetUnreadCountFunc: func(ctx context.Context, userID uuid.UUID) (int, error) {
		return 5, nil
	}})

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil), uuid.New())
	rr := httptest.NewRecorder()
	handler.UnreadCount(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var response UnreadCountResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Count != 5 {
		t.Fatalf("expected 5, got %d", response.Count)
	}
}

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	handler := NewNotificationHandler(&mockNotificationService{MarkAsReadFunc: func(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
		// Covers both an absent row and another user's notification.
		return nil, services.ErrNotificationNotFound
	}})

	id := uuid.New()
	req := withUser(httptest.NewRequest(http.MethodPut, "/api/notifications/"+id.String()+"/read", nil), uuid.New())
	req.SetPathValue("id", id.String())
	rr := httptest.NewRecorder()
	handler.MarkRead(rr, req)
	assertErrorResponse(t, rr, http.StatusNotFound, services.ErrNotificationNotFound.Error())
}

func TestNotificationHandler_MarkRead_Success(t *testing.T) {
	userID := uuid.New()
	n := testNotification(userID)
	n.IsRead = true
	handler := NewNotificationHandler(&mockNotificationService{MarkAsReadFunc: func(ctx context.Context, id, uID uuid.UUID) (*models.Notification, error) {
		return &n, nil
	}})

	req := withUser(httptest.NewRequest(http.MethodPut, "/api/notifications/"+n.ID.String()+"/read", nil), userID)
	req.SetPathValue("id", n.ID.String())
	rr := httptest.NewRecorder()
	handler.MarkRead(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var response NotificationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Notification == nil || !response.Notification.IsRead {
		t.Fatalf("unexpected response: %+v", response)
	}
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	userID := uuid.New()
	called := false
	handler := NewNotificationHandler(&mockNotificationService{MarkAllAsReadFunc: func(ctx context.Context, uID uuid.UUID) error {
		if uID != userID {
			t.Fatalf("unexpected user %v", uID)
		}
		called = true
		return nil
	}})

	req := withUser(httptest.NewRequest(http.MethodPut, "/api/notifications/read-all", nil), userID)
	rr := httptest.NewRecorder()
	handler.MarkAllRead(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !called {
		t.Fatal("expected MarkAllAsRead to be called")
	}
}

func TestNotificationHandler_Delete_InvalidID(t *testing.T) {
	handler := NewNotificationHandler(&mockNotificationService{})

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/notifications/nope", nil), uuid.New())
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()
	handler.Delete(rr, req)
	assertErrorResponse(t, rr, http.StatusBadRequest, "Invalid notification ID")
}
