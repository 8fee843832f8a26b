package services

import "errors"

var (
	ErrConnectionNotFound       = errors.New("connection not found")
	ErrConnectionExists         = errors.New("connection already exists between these users")
	ErrSelfConnection           = errors.New("cannot create a connection with yourself")
	ErrMessageTooLong           = errors.New("connection message exceeds maximum length")
	ErrNotConnectionReceiver    = errors.New("only the receiver can accept or reject")
	ErrNotConnectionParticipant = errors.New("user is not part of this connection")
	ErrConnectionNotPending     = errors.New("connection is not pending")
	ErrConnectionNotBlockable   = errors.New("connection cannot be blocked in its current state")
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrInvalidNotificationType  = errors.New("invalid notification type")
)

// Category is the status class the caller boundary maps a service error to.
type Category string

const (
	CategoryNotFound   Category = "not_found"
	CategoryForbidden  Category = "forbidden"
	CategoryConflict   Category = "conflict"
	CategoryValidation Category = "validation"
	CategoryInternal   Category = "internal"
)

// Categorize maps a service error to its status category. Anything outside
// the taxonomy, including wrapped storage failures, is internal.
func Categorize(err error) Category {
	switch {
	case errors.Is(err, ErrConnectionNotFound), errors.Is(err, ErrNotificationNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrNotConnectionReceiver), errors.Is(err, ErrNotConnectionParticipant):
		return CategoryForbidden
	case errors.Is(err, ErrConnectionExists), errors.Is(err, ErrConnectionNotPending),
		errors.Is(err, ErrConnectionNotBlockable):
		return CategoryConflict
	case errors.Is(err, ErrSelfConnection), errors.Is(err, ErrMessageTooLong),
		errors.Is(err, ErrInvalidNotificationType):
		return CategoryValidation
	default:
		return CategoryInternal
	}
}
