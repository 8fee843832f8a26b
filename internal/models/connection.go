package models

import (
	"time"

	"github.com/google/uuid"
)

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
	ConnectionStatusBlocked  ConnectionStatus = "blocked"
)

// MaxConnectionMessageLength bounds the optional request message.
const MaxConnectionMessageLength = 500

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionStatusPending, ConnectionStatusAccepted, ConnectionStatusRejected, ConnectionStatusBlocked:
		return true
	}
	return false
}

// Connection is a bidirectional link between two users. It is created as
// pending by the requester and only ever mutated through the connection
// service; rejected and blocked are terminal states.
type Connection struct {
	ID          uuid.UUID        `json:"id"`
	RequesterID uuid.UUID        `json:"requester_id"`
	ReceiverID  uuid.UUID        `json:"receiver_id"`
	Status      ConnectionStatus `json:"status"`
	Message     *string          `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CanBeAccepted reports whether the receiver may accept this connection.
func (c *Connection) CanBeAccepted() bool {
	return c.Status == ConnectionStatusPending
}

// CanBeRejected reports whether the receiver may reject this connection.
func (c *Connection) CanBeRejected() bool {
	return c.Status == ConnectionStatusPending
}

// CanBeBlocked reports whether either participant may block this connection.
func (c *Connection) CanBeBlocked() bool {
	return c.Status == ConnectionStatusPending || c.Status == ConnectionStatusAccepted
}

// IsParticipant reports whether userID is one of the two sides.
func (c *Connection) IsParticipant(userID uuid.UUID) bool {
	return c.RequesterID == userID || c.ReceiverID == userID
}

// CounterpartOf returns the other participant's id. The caller must be a
// participant.
func (c *Connection) CounterpartOf(userID uuid.UUID) uuid.UUID {
	if c.RequesterID == userID {
		return c.ReceiverID
	}
	return c.RequesterID
}

// Validate checks the structural invariants: distinct participants, a known
// status, and a message within bounds when present.
func (c *Connection) Validate() bool {
	if c.RequesterID == c.ReceiverID {
		return false
	}
	if !c.Status.Valid() {
		return false
	}
	if c.Message != nil && len(*c.Message) > MaxConnectionMessageLength {
		return false
	}
	return true
}

// PublicProfile carries the counterpart fields joined into connection lists.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

type ConnectionWithUser struct {
	Connection
	Counterpart PublicProfile `json:"counterpart"`
}

type ConnectionDirectionStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

type ConnectionStats struct {
	Total    int                      `json:"total"`
	Received ConnectionDirectionStats `json:"received"`
	Sent     ConnectionDirectionStats `json:"sent"`
	Friends  int                      `json:"friends"`
}
