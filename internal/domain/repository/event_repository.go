package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
)

// EventFilter narrows a Find call. Zero values disable a criterion and set criteria are
// AND-combined.
type EventFilter struct {
	// Search matches title or description, case-insensitively.
	Search   string
	Location string
	// StartDate keeps events starting on or after it.
	StartDate *time.Time
	// EndDate keeps events ending on or before it.
	EndDate *time.Time
	// Tags keeps events sharing at least one tag.
	Tags []string
}

// EventRepository is the persistence gateway for events and their participant set.
//
// AddParticipant, RemoveParticipant and Update are conditional: the check and the write happen
// atomically with respect to every other writer of the same event.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Find(ctx context.Context, f EventFilter) ([]*entity.Event, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Event, error)

	// Update locks the event, hands the current row to fn and writes back what fn leaves in it.
	// An error from fn aborts without writing. It fails with ErrCapacityBelowEnrollment when the
	// resulting capacity is lower than the participant count.
	Update(ctx context.Context, id string, fn func(e *entity.Event) error) (*entity.Event, error)
	Delete(ctx context.Context, id string) error

	// AddParticipant fails with ErrAlreadyParticipating or ErrCapacityReached without writing.
	AddParticipant(ctx context.Context, eventID, userID string) error
	// RemoveParticipant fails with ErrNotParticipating without writing.
	RemoveParticipant(ctx context.Context, eventID, userID string) error
}
