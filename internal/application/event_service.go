package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	repo "github.com/oksasatya/go-community-events/internal/domain/repository"
)

// EventService owns the event lifecycle: create, read, search, update, delete.
// Index and Storage are optional collaborators.
type EventService struct {
	Events  repo.EventRepository
	Users   repo.UserRepository
	Notify  Notifier
	Index   EventIndex
	Storage ObjectStore
	Logger  *logrus.Logger
}

func NewEventService(events repo.EventRepository, users repo.UserRepository, n Notifier, index EventIndex, storage ObjectStore, logger *logrus.Logger) *EventService {
	return &EventService{
		Events:  events,
		Users:   users,
		Notify:  n,
		Index:   index,
		Storage: storage,
		Logger:  logger,
	}
}

type CreateEventInput struct {
	Title       string
	Description string
	BannerImage string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	AgeLimit    entity.AgeLimit
	Capacity    int
	Tags        []string
}

// UpdateEventInput carries a partial update; nil fields are left untouched.
type UpdateEventInput struct {
	Title       *string
	Description *string
	BannerImage *string
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
	AgeLimit    *entity.AgeLimit
	Capacity    *int
	Tags        *[]string
}

func (s *EventService) Create(ctx context.Context, actorID string, in CreateEventInput) (*entity.Event, error) {
	actor, err := s.Users.GetByID(ctx, actorID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}

	e := &entity.Event{
		CreatorID:   actor.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		BannerImage: in.BannerImage,
		Location:    in.Location,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		AgeLimit:    in.AgeLimit,
		Capacity:    in.Capacity,
		Tags:        normalizeTags(in.Tags),
	}
	if err := validateEvent(e); err != nil {
		return nil, err
	}
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	e.Participants = []string{}
	e.Donations = []string{}

	send(s.Notify, s.Logger, actor.Email, "Event created", fmt.Sprintf("Your event %q has been created.", e.Title))
	s.index(ctx, e)
	return e, nil
}

func (s *EventService) Get(ctx context.Context, eventID string) (*entity.Event, error) {
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, translate(err, ErrEventNotFound)
	}
	return e, nil
}

func (s *EventService) List(ctx context.Context) ([]*entity.Event, error) {
	return s.Search(ctx, repo.EventFilter{})
}

func (s *EventService) Search(ctx context.Context, f repo.EventFilter) ([]*entity.Event, error) {
	f.Tags = normalizeTags(f.Tags)
	events, err := s.Events.Find(ctx, f)
	if err != nil {
		return nil, Internal(err)
	}
	if events == nil {
		events = []*entity.Event{}
	}
	return events, nil
}

// FullTextSearch ranks events through the search index and loads the hits from the store.
// Hits that no longer exist in the store are skipped.
func (s *EventService) FullTextSearch(ctx context.Context, query string, size int) ([]*entity.Event, error) {
	if s.Index == nil || strings.TrimSpace(query) == "" {
		return []*entity.Event{}, nil
	}
	ids, err := s.Index.Search(ctx, query, size)
	if err != nil {
		return nil, Internal(err)
	}
	found, err := s.Events.ListByIDs(ctx, ids)
	if err != nil {
		return nil, Internal(err)
	}
	byID := make(map[string]*entity.Event, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}
	out := make([]*entity.Event, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *EventService) Update(ctx context.Context, actorID, eventID string, in UpdateEventInput) (*entity.Event, error) {
	e, actor, err := s.loadForModify(ctx, actorID, eventID)
	if err != nil {
		return nil, err
	}
	if !CanModifyEvent(actor, e) {
		return nil, ErrUnauthorized
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		return nil, ErrNegativeCapacity
	}

	// The payload is merged into the row read under the lock, never into e.
	e, err = s.Events.Update(ctx, e.ID, func(cur *entity.Event) error {
		if in.Capacity != nil && *in.Capacity < len(cur.Participants) {
			return ErrCapacityBelowEnrollment
		}
		applyEventUpdate(cur, in)
		return validateEvent(cur)
	})
	if err != nil {
		return nil, translate(err, ErrEventNotFound)
	}

	recipients := append([]string{e.CreatorID}, e.Participants...)
	notifyUsers(ctx, s.Users, s.Notify, s.Logger, recipients, "Event updated", fmt.Sprintf("The event %q has been updated.", e.Title))
	s.index(ctx, e)
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, actorID, eventID string) error {
	e, actor, err := s.loadForModify(ctx, actorID, eventID)
	if err != nil {
		return err
	}
	if !CanModifyEvent(actor, e) {
		return ErrUnauthorized
	}
	recipients := append([]string{e.CreatorID}, e.Participants...)

	if err := s.Events.Delete(ctx, e.ID); err != nil {
		return translate(err, ErrEventNotFound)
	}

	notifyUsers(ctx, s.Users, s.Notify, s.Logger, recipients, "Event cancelled", fmt.Sprintf("The event %q has been cancelled.", e.Title))
	if s.Index != nil {
		if err := s.Index.Delete(ctx, e.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("remove event from index failed")
		}
	}
	return nil
}

// UploadBanner stores the image and points the event's banner at it.
func (s *EventService) UploadBanner(ctx context.Context, actorID, eventID string, r io.Reader, filename, contentType string) (*entity.Event, error) {
	e, actor, err := s.loadForModify(ctx, actorID, eventID)
	if err != nil {
		return nil, err
	}
	if !CanModifyEvent(actor, e) {
		return nil, ErrUnauthorized
	}
	if s.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	objectPath := filepath.ToSlash(filepath.Join("events", e.ID, uuid.NewString()+strings.ToLower(filepath.Ext(filename))))
	url, err := s.Storage.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, Internal(err)
	}
	e, err = s.Events.Update(ctx, e.ID, func(cur *entity.Event) error {
		cur.BannerImage = url
		return nil
	})
	if err != nil {
		return nil, translate(err, ErrEventNotFound)
	}
	s.index(ctx, e)
	return e, nil
}

func (s *EventService) loadForModify(ctx context.Context, actorID, eventID string) (*entity.Event, *entity.User, error) {
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

func (s *EventService) index(ctx context.Context, e *entity.Event) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, e); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event_id", e.ID).Warn("index event failed")
	}
}

func applyEventUpdate(e *entity.Event, in UpdateEventInput) {
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.BannerImage != nil {
		e.BannerImage = *in.BannerImage
	}
	if in.Location != nil {
		e.Location = *in.Location
	}
	if in.StartDate != nil {
		e.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		e.EndDate = *in.EndDate
	}
	if in.AgeLimit != nil {
		e.AgeLimit = *in.AgeLimit
	}
	if in.Capacity != nil {
		e.Capacity = *in.Capacity
	}
	if in.Tags != nil {
		e.Tags = normalizeTags(*in.Tags)
	}
}

func validateEvent(e *entity.Event) error {
	switch {
	case e.Title == "":
		return ErrTitleRequired
	case e.Capacity < 0:
		return ErrNegativeCapacity
	case e.StartDate.After(e.EndDate):
		return ErrInvalidDateRange
	case e.AgeLimit.Lower < 0 || e.AgeLimit.Lower > e.AgeLimit.Upper:
		return ErrInvalidAgeLimit
	}
	return nil
}

// normalizeTags trims, drops blanks and removes duplicates while keeping first-seen order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
