// Package realtime provides the per-user live push channel. Delivery is
// fire-and-forget: no acknowledgment, no retry; the persisted inbox is the
// durable path for anything a socket misses.
package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/logging"
)

const (
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	readLimit    = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// session is one live connection of a user; tests substitute fakes.
type session interface {
	WriteJSON(v any) error
	Close() error
}

// wsSession serializes writes; gorilla connections allow only one
// concurrent writer.
type wsSession struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSession) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(v)
}

func (s *wsSession) Close() error {
	return s.conn.Close()
}

// Hub tracks which users have live sessions and fans payloads out to them.
// A user may hold several sessions (multiple tabs/devices).
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[uuid.UUID][]session)}
}

// Register attaches a session to userID.
func (h *Hub) Register(userID uuid.UUID, s session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[userID] = append(h.sessions[userID], s)
}

// Unregister detaches a session; the last session removes the user entirely.
func (h *Hub) Unregister(userID uuid.UUID, s session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	remaining := h.sessions[userID][:0]
	for _, existing := range h.sessions[userID] {
		if existing != s {
			remaining = append(remaining, existing)
		}
	}
	if len(remaining) == 0 {
		delete(h.sessions, userID)
		return
	}
	h.sessions[userID] = remaining
}

// IsConnected reports whether the user has at least one live session.
func (h *Hub) IsConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID]) > 0
}

// Emit writes payload to every session of the user, pruning sessions that
// fail. Returns the last write error when no session accepted the payload.
func (h *Hub) Emit(userID uuid.UUID, payload any) error {
	h.mu.RLock()
	targets := append([]session(nil), h.sessions[userID]...)
	h.mu.RUnlock()

	var lastErr error
	delivered := false
	for _, s := range targets {
		if err := s.WriteJSON(payload); err != nil {
			lastErr = err
			_ = s.Close()
			h.Unregister(userID, s)
			continue
		}
		delivered = true
	}
	if !delivered && lastErr != nil {
		return lastErr
	}
	return nil
}

// ServeWS upgrades the request and keeps the session registered until the
// peer goes away. The caller boundary has already authenticated userID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Websocket upgrade failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID.String(),
		})
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	sess := &wsSession{conn: conn}
	h.Register(userID, sess)
	logging.Debug("Live channel connected", map[string]interface{}{
		"user_id": userID.String(),
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
					return
				}
			}
		}
	}()

	// Drain inbound frames; the channel is push-only, so content is ignored
	// but reads drive pong handling and disconnect detection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(done)
	h.Unregister(userID, sess)
	_ = conn.Close()
	logging.Debug("Live channel disconnected", map[string]interface{}{
		"user_id": userID.String(),
	})
}
