package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/services"
)

type ConnectionHandler struct {
	connections services.ConnectionServiceInterface
}

func NewConnectionHandler(connections services.ConnectionServiceInterface) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

type CreateConnectionRequest struct {
	ReceiverID string  `json:"receiver_id"`
	Message    *string `json:"message,omitempty"`
}

type ConnectionResponse struct {
	Connection *models.Connection `json:"connection,omitempty"`
	Message    string             `json:"message,omitempty"`
}

type ConnectionListResponse struct {
	Connections []models.ConnectionWithUser `json:"connections"`
}

type ConnectionStatsResponse struct {
	Stats *models.ConnectionStats `json:"stats"`
}

func (h *ConnectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid receiver ID")
		return
	}

	conn, err := h.connections.CreateConnection(r.Context(), userID, receiverID, req.Message)
	if errors.Is(err, services.ErrConnectionExists) {
		// The existing row rides along so the caller can see its status.
		writeJSON(w, http.StatusConflict, ConnectionResponse{
			Connection: conn,
			Message:    "Connection already exists",
		})
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ConnectionResponse{Connection: conn, Message: "Connection request sent"})
}

func (h *ConnectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	conn, err := h.connections.GetConnection(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConnectionResponse{Connection: conn})
}

func (h *ConnectionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.connections.AcceptConnection, "Connection accepted")
}

func (h *ConnectionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.connections.RejectConnection, "Connection rejected")
}

func (h *ConnectionHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.connections.BlockConnection, "Connection blocked")
}

func (h *ConnectionHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error),
	message string,
) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	conn, err := op(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConnectionResponse{Connection: conn, Message: message})
}

func (h *ConnectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	if err := h.connections.DeleteConnection(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConnectionResponse{Message: "Connection deleted"})
}

func (h *ConnectionHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.connections.ListReceived)
}

func (h *ConnectionHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.connections.ListSent)
}

func (h *ConnectionHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error),
) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var status *models.ConnectionStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.ConnectionStatus(raw)
		if !s.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		status = &s
	}

	connections, err := op(r.Context(), userID, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConnectionListResponse{Connections: connections})
}

func (h *ConnectionHandler) ListAccepted(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	connections, err := h.connections.ListAccepted(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConnectionListResponse{Connections: connections})
}

func (h *ConnectionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.connections.GetConnectionStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConnectionStatsResponse{Stats: stats})
}
