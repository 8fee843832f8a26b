package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/models"
)

var (
	// ErrConnectionNotFound is returned when no row matches the lookup.
	ErrConnectionNotFound = errors.New("connection row not found")
	// ErrDuplicatePair is returned when an insert loses against the unique
	// index on the unordered user pair. The index, not the pre-check, is the
	// authoritative duplicate signal.
	ErrDuplicatePair = errors.New("connection already exists for user pair")
)

const uniqueViolationCode = "23505"

const connectionColumns = "id, requester_id, receiver_id, status, message, created_at, updated_at"

// ConnectionRepository persists connections. Transition legality is enforced
// by the service; the repository only guarantees the pair-uniqueness and
// compare-and-swap contracts.
type ConnectionRepository struct {
	db DB
}

func NewConnectionRepository(db DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create inserts a pending connection. A unique-index violation on the
// unordered pair surfaces as ErrDuplicatePair.
func (r *ConnectionRepository) Create(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*models.Connection, error) {
	conn := &models.Connection{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO connections (requester_id, receiver_id, status, message)
		 VALUES ($1, $2, 'pending', $3)
		 RETURNING `+connectionColumns,
		requesterID, receiverID, message,
	).Scan(
		&conn.ID, &conn.RequesterID, &conn.ReceiverID, &conn.Status,
		&conn.Message, &conn.CreatedAt, &conn.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicatePair
		}
		return nil, fmt.Errorf("inserting connection: %w", err)
	}
	return conn, nil
}

func (r *ConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	conn := &models.Connection{}
	err := r.db.QueryRow(ctx,
		`SELECT `+connectionColumns+` FROM connections WHERE id = $1`,
		id,
	).Scan(
		&conn.ID, &conn.RequesterID, &conn.ReceiverID, &conn.Status,
		&conn.Message, &conn.CreatedAt, &conn.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding connection: %w", err)
	}
	return conn, nil
}

// FindBetween returns the single connection between two users regardless of
// which side requested it.
func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*models.Connection, error) {
	conn := &models.Connection{}
	err := r.db.QueryRow(ctx,
		`SELECT `+connectionColumns+` FROM connections
		 WHERE (requester_id = $1 AND receiver_id = $2)
		    OR (requester_id = $2 AND receiver_id = $1)`,
		a, b,
	).Scan(
		&conn.ID, &conn.RequesterID, &conn.ReceiverID, &conn.Status,
		&conn.Message, &conn.CreatedAt, &conn.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding connection between users: %w", err)
	}
	return conn, nil
}

// ExistsBetween is a best-effort pre-check; concurrent creates can both see
// false and race at insert time, where the unique index decides.
func (r *ConnectionRepository) ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM connections
			WHERE (requester_id = $1 AND receiver_id = $2)
			   OR (requester_id = $2 AND receiver_id = $1)
		)`,
		a, b,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking connection existence: %w", err)
	}
	return exists, nil
}

// FindReceived lists connections addressed to userID, joined with the
// requester's public profile, newest first. A nil status returns all.
func (r *ConnectionRepository) FindReceived(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	query := `SELECT c.id, c.requester_id, c.receiver_id, c.status, c.message, c.created_at, c.updated_at,
	                 u.id, u.name, u.avatar_url
	          FROM connections c
	          JOIN users u ON c.requester_id = u.id
	          WHERE c.receiver_id = $1`
	args := []any{userID}
	if status != nil {
		query += " AND c.status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY c.created_at DESC"

	return r.queryWithUser(ctx, query, args, "listing received connections")
}

// FindSent lists connections initiated by userID, joined with the receiver's
// public profile, newest first.
func (r *ConnectionRepository) FindSent(ctx context.Context, userID uuid.UUID, status *models.ConnectionStatus) ([]models.ConnectionWithUser, error) {
	query := `SELECT c.id, c.requester_id, c.receiver_id, c.status, c.message, c.created_at, c.updated_at,
	                 u.id, u.name, u.avatar_url
	          FROM connections c
	          JOIN users u ON c.receiver_id = u.id
	          WHERE c.requester_id = $1`
	args := []any{userID}
	if status != nil {
		query += " AND c.status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY c.created_at DESC"

	return r.queryWithUser(ctx, query, args, "listing sent connections")
}

// FindAccepted lists accepted connections involving userID; the joined
// profile is whichever participant is not userID.
func (r *ConnectionRepository) FindAccepted(ctx context.Context, userID uuid.UUID) ([]models.ConnectionWithUser, error) {
	query := `SELECT c.id, c.requester_id, c.receiver_id, c.status, c.message, c.created_at, c.updated_at,
	                 u.id, u.name, u.avatar_url
	          FROM connections c
	          JOIN users u ON u.id = CASE WHEN c.requester_id = $1 THEN c.receiver_id ELSE c.requester_id END
	          WHERE (c.requester_id = $1 OR c.receiver_id = $1)
	            AND c.status = 'accepted'
	          ORDER BY c.created_at DESC`

	return r.queryWithUser(ctx, query, []any{userID}, "listing accepted connections")
}

// UpdateStatus applies a compare-and-swap transition: the row moves to `to`
// only if it is still in `from`. Returns false when the guard did not match,
// which covers both a concurrent transition and a deleted row.
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ConnectionStatus) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE connections SET status = $3, updated_at = NOW()
		 WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("updating connection status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ConnectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM connections WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

func (r *ConnectionRepository) queryWithUser(ctx context.Context, query string, args []any, op string) ([]models.ConnectionWithUser, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var results []models.ConnectionWithUser
	for rows.Next() {
		var c models.ConnectionWithUser
		if err := rows.Scan(
			&c.ID, &c.RequesterID, &c.ReceiverID, &c.Status,
			&c.Message, &c.CreatedAt, &c.UpdatedAt,
			&c.Counterpart.ID, &c.Counterpart.Name, &c.Counterpart.AvatarURL,
		); err != nil {
			return nil, fmt.Errorf("scanning connection: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if results == nil {
		results = []models.ConnectionWithUser{}
	}
	return results, nil
}
