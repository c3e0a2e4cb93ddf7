package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	repo "github.com/oksasatya/go-community-events/internal/domain/repository"
)

// MembershipService moves a (user, event) pair between not-joined and joined.
// The gateway's conditional writes are authoritative; the checks here only fail fast.
type MembershipService struct {
	Events repo.EventRepository
	Users  repo.UserRepository
	Notify Notifier
	Now    func() time.Time
	Logger *logrus.Logger
}

func NewMembershipService(events repo.EventRepository, users repo.UserRepository, n Notifier, logger *logrus.Logger) *MembershipService {
	return &MembershipService{Events: events, Users: users, Notify: n, Now: time.Now, Logger: logger}
}

// UserEvents partitions the events a user is involved in.
type UserEvents struct {
	Created  []*entity.Event
	Upcoming []*entity.Event
	Passed   []*entity.Event
}

func (s *MembershipService) Join(ctx context.Context, actorID, eventID string) error {
	e, actor, err := s.load(ctx, actorID, eventID)
	if err != nil {
		return err
	}
	if e.HasParticipant(actor.ID) {
		return ErrAlreadyParticipating
	}
	if e.IsFull() {
		return ErrCapacityReached
	}
	if err := s.Events.AddParticipant(ctx, e.ID, actor.ID); err != nil {
		return translate(err, ErrEventNotFound)
	}

	send(s.Notify, s.Logger, actor.Email, "Event joined", fmt.Sprintf("You have joined the event %q.", e.Title))
	return nil
}

func (s *MembershipService) Leave(ctx context.Context, actorID, eventID string) error {
	e, actor, err := s.load(ctx, actorID, eventID)
	if err != nil {
		return err
	}
	if !e.HasParticipant(actor.ID) {
		return ErrNotParticipating
	}
	if err := s.Events.RemoveParticipant(ctx, e.ID, actor.ID); err != nil {
		return translate(err, ErrEventNotFound)
	}
	return nil
}

// EventsForUser classifies joined events against a single reading of the clock. An event
// ending exactly now counts as passed.
func (s *MembershipService) EventsForUser(ctx context.Context, userID string) (*UserEvents, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	created, err := s.Events.ListByIDs(ctx, u.CreatedEvents)
	if err != nil {
		return nil, Internal(err)
	}
	joined, err := s.Events.ListByIDs(ctx, u.JoinedEvents)
	if err != nil {
		return nil, Internal(err)
	}

	now := s.now()
	out := &UserEvents{
		Created:  created,
		Upcoming: []*entity.Event{},
		Passed:   []*entity.Event{},
	}
	for _, e := range joined {
		if e.HasEnded(now) {
			out.Passed = append(out.Passed, e)
		} else {
			out.Upcoming = append(out.Upcoming, e)
		}
	}
	return out, nil
}

func (s *MembershipService) load(ctx context.Context, actorID, eventID string) (*entity.Event, *entity.User, error) {
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, translate(err, ErrEventNotFound)
	}
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, translate(err, ErrUserNotFound)
	}
	return e, actor, nil
}

func (s *MembershipService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
