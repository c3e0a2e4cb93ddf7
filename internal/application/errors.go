package application

import (
	"errors"

	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

// Kind classifies an Error for the transport layer.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindUnauthorized    Kind = "unauthorized"
	KindInvalidState    Kind = "invalid_state"
	KindInvalidArgument Kind = "invalid_argument"
	KindInternal        Kind = "internal"
)

// Error is the only error type services return. Two Errors match under errors.Is when kind and
// message are equal, so callers compare against the sentinels below.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrUserNotFound     = &Error{Kind: KindNotFound, Entity: "user", Message: "user not found"}
	ErrEventNotFound    = &Error{Kind: KindNotFound, Entity: "event", Message: "event not found"}
	ErrBlogPostNotFound = &Error{Kind: KindNotFound, Entity: "blog post", Message: "blog post not found"}

	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "not allowed to modify this resource"}

	ErrAlreadyParticipating    = &Error{Kind: KindInvalidState, Entity: "event", Message: "already participating"}
	ErrCapacityReached         = &Error{Kind: KindInvalidState, Entity: "event", Message: "capacity reached"}
	ErrNotParticipating        = &Error{Kind: KindInvalidState, Entity: "event", Message: "not participating"}
	ErrCapacityBelowEnrollment = &Error{Kind: KindInvalidState, Entity: "event", Message: "capacity below current enrollment"}

	ErrInvalidAmount    = &Error{Kind: KindInvalidArgument, Entity: "donation", Message: "amount must be a positive number with at most two decimal places"}
	ErrAmountTooLarge   = &Error{Kind: KindInvalidArgument, Entity: "donation", Message: "amount exceeds the maximum donation"}
	ErrTitleRequired    = &Error{Kind: KindInvalidArgument, Entity: "event", Message: "title is required"}
	ErrNegativeCapacity = &Error{Kind: KindInvalidArgument, Entity: "event", Message: "capacity must not be negative"}
	ErrInvalidDateRange = &Error{Kind: KindInvalidArgument, Entity: "event", Message: "start date must not be after end date"}
	ErrInvalidAgeLimit  = &Error{Kind: KindInvalidArgument, Entity: "event", Message: "age limit must satisfy 0 <= lower <= upper"}
	ErrInvalidUpload    = &Error{Kind: KindInvalidArgument, Message: "file is required"}

	ErrStorageUnavailable = &Error{Kind: KindInternal, Message: "object storage not configured"}
)

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf reports the Kind of err, treating foreign errors as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// translate maps gateway sentinels onto service errors. notFound names the entity the caller
// was addressing.
func translate(err error, notFound *Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrAlreadyParticipating):
		return ErrAlreadyParticipating
	case errors.Is(err, repository.ErrCapacityReached):
		return ErrCapacityReached
	case errors.Is(err, repository.ErrNotParticipating):
		return ErrNotParticipating
	case errors.Is(err, repository.ErrCapacityBelowEnrollment):
		return ErrCapacityBelowEnrollment
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
