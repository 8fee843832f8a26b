package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/logging"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/repository"
)

// ConnectionService orchestrates the connection lifecycle: validation and
// authorization up front, compare-and-swap transitions through the
// repository, then best-effort notification fan-out and cache invalidation.
// Secondary failures never fail the primary mutation.
type ConnectionService struct {
	repo     ConnectionRepositoryInterface
	notifier Notifier
	live     LiveChannel
	cache    RecommendationInvalidator
}

func NewConnectionService(repo ConnectionRepositoryInterface, notifier Notifier, live LiveChannel, cache RecommendationInvalidator) *ConnectionService {
	return &ConnectionService{
		repo:     repo,
		notifier: notifier,
		live:     live,
		cache:    cache,
	}
}

// CreateConnection creates a pending connection from requester to receiver.
// When a connection between the pair already exists, the existing row is
// returned together with ErrConnectionExists so callers can branch without a
// second lookup. The pre-check is only an optimization; the unique index
// decides races, and a duplicate-key violation takes the same return path.
func (s *ConnectionService) CreateConnection(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*models.Connection, error) {
	if requesterID == receiverID {
		return nil, ErrSelfConnection
	}
	if message != nil && len(*message) > models.MaxConnectionMessageLength {
		return nil, ErrMessageTooLong
	}

	exists, err := s.repo.ExistsBetween(ctx, requesterID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("creating connection: %w", err)
	}
	if exists {
		return s.existingBetween(ctx, requesterID, receiverID)
	}

	conn, err := s.repo.Create(ctx, requesterID, receiverID, message)
	if errors.Is(err, repository.ErrDuplicatePair) {
		// Lost the insert race; the stored row wins.
		return s.existingBetween(ctx, requesterID, receiverID)
	}
	if err != nil {
		return nil, fmt.Errorf("creating connection: %w", err)
	}

	s.notify(ctx, conn, requesterID, receiverID, models.NotificationTypeConnectionRequest,
		"New connection request", "You received a new connection request")
	s.invalidate(ctx, requesterID, receiverID)

	return conn, nil
}

// GetConnection returns a connection to one of its participants.
func (s *ConnectionService) GetConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error) {
	conn, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !conn.IsParticipant(callerID) {
		return nil, ErrNotConnectionParticipant
	}
	return conn, nil
}

// AcceptConnection moves a pending connection to accepted. Only the receiver
// may accept.
func (s *ConnectionService) AcceptConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error) {
	return s.receiverTransition(ctx, id, callerID, models.ConnectionStatusAccepted,
		"Connection accepted", "Your connection request was accepted")
}

// RejectConnection moves a pending connection to rejected. Only the receiver
// may reject; rejected is terminal.
func (s *ConnectionService) RejectConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error) {
	return s.receiverTransition(ctx, id, callerID, models.ConnectionStatusRejected,
		"Connection rejected", "Your connection request was rejected")
}

func (s *ConnectionService) receiverTransition(ctx context.Context, id, callerID uuid.UUID, to models.ConnectionStatus, title, message string) (*models.Connection, error) {
	conn, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conn.ReceiverID != callerID {
		return nil, ErrNotConnectionReceiver
	}
	if !conn.CanBeAccepted() {
		return nil, ErrConnectionNotPending
	}

	if err := s.swapStatus(ctx, conn, models.ConnectionStatusPending, to, ErrConnectionNotPending); err != nil {
		return nil, err
	}

	nType := models.NotificationTypeConnectionAccepted
	if to == models.ConnectionStatusRejected {
		nType = models.NotificationTypeConnectionRejected
	}
	s.notify(ctx, conn, callerID, conn.RequesterID, nType, title, message)
	s.invalidate(ctx, conn.RequesterID, conn.ReceiverID)

	return conn, nil
}

// BlockConnection moves a pending or accepted connection to blocked. Either
// participant may block; blocked is terminal.
func (s *ConnectionService) BlockConnection(ctx context.Context, id, callerID uuid.UUID) (*models.Connection, error) {
	conn, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !conn.IsParticipant(callerID) {
		return nil, ErrNotConnectionParticipant
	}
	if !conn.CanBeBlocked() {
		return nil, ErrConnectionNotBlockable
	}

	if err := s.swapStatus(ctx, conn, conn.Status, models.ConnectionStatusBlocked, ErrConnectionNotBlockable); err != nil {
		return nil, err
	}

	s.notify(ctx, conn, callerID, conn.CounterpartOf(callerID), models.NotificationTypeConnectionBlocked,
		"Connection blocked", "A connection was blocked")
	s.invalidate(ctx, conn.RequesterID, conn.ReceiverID)

	return conn, nil
}

// DeleteConnection removes a connection. Either participant may delete.
func (s *ConnectionService) DeleteConnection(ctx context.Context, id, callerID uuid.UUID) error {
	conn, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if !conn.IsParticipant(callerID) {
		return ErrNotConnectionParticipant
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return ErrConnectionNotFound
		}
		return fmt.Errorf("deleting connection: %w", err)
	}

	s.invalidate(ctx, conn.RequesterID, conn.ReceiverID)
	return nil
}

func (s *ConnectionService) ListReceived(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	list, err := s.repo.FindReceived(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("listing received connections: %w", err)
	}
	return list, nil
}

func (s *ConnectionService) ListSent(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	list, err := s.repo.FindSent(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("listing sent connections: %w", err)
	}
	return list, nil
}

func (s *ConnectionService) ListAccepted(ctx context.Context, userID uuid.UUID) ([]models.ConnectionWithUser, error) {
	list, err := s.repo.FindAccepted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accepted connections: %w", err)
	}
	return list, nil
}

// GetConnectionStats reduces the user's received, sent and accepted sets into
// counts. Total is always Received.Total + Sent.Total.
func (s *ConnectionService) GetConnectionStats(ctx context.Context, userID uuid.UUID) (*models.ConnectionStats, error) {
	received, err := s.repo.FindReceived(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("loading connection stats: %w", err)
	}
	sent, err := s.repo.FindSent(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("loading connection stats: %w", err)
	}
	accepted, err := s.repo.FindAccepted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading connection stats: %w", err)
	}

	stats := &models.ConnectionStats{
		Received: reduceDirection(received),
		Sent:     reduceDirection(sent),
		Friends:  len(accepted),
	}
	stats.Total = stats.Received.Total + stats.Sent.Total
	return stats, nil
}

func reduceDirection(list []models.ConnectionWithUser) models.ConnectionDirectionStats {
	stats := models.ConnectionDirectionStats{Total: len(list)}
	for _, c := range list {
		switch c.Status {
		case models.ConnectionStatusPending:
			stats.Pending++
		case models.ConnectionStatusAccepted:
			stats.Accepted++
		case models.ConnectionStatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

func (s *ConnectionService) getByID(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	conn, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrConnectionNotFound) {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading connection: %w", err)
	}
	return conn, nil
}

func (s *ConnectionService) existingBetween(ctx context.Context, a, b uuid.UUID) (*models.Connection, error) {
	conn, err := s.repo.FindBetween(ctx, a, b)
	if err != nil {
		// The row was there a moment ago; treat disappearance as conflict
		// all the same, without the entity.
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return nil, ErrConnectionExists
		}
		return nil, fmt.Errorf("loading existing connection: %w", err)
	}
	return conn, ErrConnectionExists
}

// swapStatus applies a compare-and-swap transition and mirrors the result on
// the in-memory entity. A guard miss re-fetches to distinguish a deleted row
// from a concurrent transition.
func (s *ConnectionService) swapStatus(ctx context.Context, conn *models.Connection, from, to models.ConnectionStatus, conflictErr error) error {
	swapped, err := s.repo.UpdateStatus(ctx, conn.ID, from, to)
	if err != nil {
		return fmt.Errorf("updating connection status: %w", err)
	}
	if !swapped {
		if _, err := s.repo.FindByID(ctx, conn.ID); errors.Is(err, repository.ErrConnectionNotFound) {
			return ErrConnectionNotFound
		}
		return conflictErr
	}
	conn.Status = to
	return nil
}

// notify persists and pushes a lifecycle notification for the counterpart.
// Failures are logged and swallowed; the transition already committed.
func (s *ConnectionService) notify(ctx context.Context, conn *models.Connection, actorID, recipientID uuid.UUID, nType models.NotificationType, title, message string) {
	if s.notifier == nil {
		return
	}

	data := models.ConnectionEventData{
		ConnectionID: conn.ID,
		ActorID:      actorID,
		Status:       conn.Status,
	}
	if _, err := s.notifier.CreateAndEmit(ctx, s.live, recipientID, nType, title, message, data.Map()); err != nil {
		logging.Error("Failed to dispatch connection notification", map[string]interface{}{
			"error":         err.Error(),
			"connection_id": conn.ID.String(),
			"recipient_id":  recipientID.String(),
			"type":          string(nType),
		})
	}
}

// invalidate drops both participants' cached recommendation lists. Cache
// unavailability degrades silently to the source of truth.
func (s *ConnectionService) invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if s.cache == nil {
		return
	}
	for _, id := range userIDs {
		if !s.cache.InvalidateRecommendations(ctx, id) {
			logging.Warn("Failed to invalidate recommendation cache", map[string]interface{}{
				"user_id": id.String(),
			})
		}
	}
}
