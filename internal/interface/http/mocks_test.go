package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-community-events/internal/application"
	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
)

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, actorID string, in application.CreateEventInput) (*entity.Event, error) {
	args := m.Called(ctx, actorID, in)
	return eventArg(args, 0), args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, eventID string) (*entity.Event, error) {
	args := m.Called(ctx, eventID)
	return eventArg(args, 0), args.Error(1)
}

func (m *MockEventService) Search(ctx context.Context, f repository.EventFilter) ([]*entity.Event, error) {
	args := m.Called(ctx, f)
	return eventsArg(args, 0), args.Error(1)
}

func (m *MockEventService) FullTextSearch(ctx context.Context, query string, size int) ([]*entity.Event, error) {
	args := m.Called(ctx, query, size)
	return eventsArg(args, 0), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, actorID, eventID string, in application.UpdateEventInput) (*entity.Event, error) {
	args := m.Called(ctx, actorID, eventID, in)
	return eventArg(args, 0), args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, actorID, eventID string) error {
	return m.Called(ctx, actorID, eventID).Error(0)
}

func (m *MockEventService) UploadBanner(ctx context.Context, actorID, eventID string, r io.Reader, filename, contentType string) (*entity.Event, error) {
	args := m.Called(ctx, actorID, eventID, r, filename, contentType)
	return eventArg(args, 0), args.Error(1)
}

type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) Join(ctx context.Context, actorID, eventID string) error {
	return m.Called(ctx, actorID, eventID).Error(0)
}

func (m *MockMembershipService) Leave(ctx context.Context, actorID, eventID string) error {
	return m.Called(ctx, actorID, eventID).Error(0)
}

func (m *MockMembershipService) EventsForUser(ctx context.Context, userID string) (*application.UserEvents, error) {
	args := m.Called(ctx, userID)
	ue, _ := args.Get(0).(*application.UserEvents)
	return ue, args.Error(1)
}

type MockDonationService struct {
	mock.Mock
}

func (m *MockDonationService) Make(ctx context.Context, actorID string, in application.MakeDonationInput) (*application.DonationReceipt, error) {
	args := m.Called(ctx, actorID, in)
	r, _ := args.Get(0).(*application.DonationReceipt)
	return r, args.Error(1)
}

func (m *MockDonationService) ForUser(ctx context.Context, userID string) ([]*entity.Donation, error) {
	args := m.Called(ctx, userID)
	ds, _ := args.Get(0).([]*entity.Donation)
	return ds, args.Error(1)
}

func (m *MockDonationService) ForEvent(ctx context.Context, eventID string) ([]*entity.Donation, error) {
	args := m.Called(ctx, eventID)
	ds, _ := args.Get(0).([]*entity.Donation)
	return ds, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, actorID string, in application.UpdateProfileInput) (*entity.User, error) {
	args := m.Called(ctx, actorID, in)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserService) UploadProfilePicture(ctx context.Context, actorID string, r io.Reader, filename, contentType string) (string, error) {
	args := m.Called(ctx, actorID, r, filename, contentType)
	return args.String(0), args.Error(1)
}

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) Create(ctx context.Context, actorID string, in application.CreateBlogPostInput) (*entity.BlogPost, error) {
	args := m.Called(ctx, actorID, in)
	p, _ := args.Get(0).(*entity.BlogPost)
	return p, args.Error(1)
}

func (m *MockBlogService) Get(ctx context.Context, id string) (*entity.BlogPost, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.BlogPost)
	return p, args.Error(1)
}

func (m *MockBlogService) List(ctx context.Context) ([]*entity.BlogPost, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*entity.BlogPost)
	return ps, args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, actorID, id string, in application.UpdateBlogPostInput) (*entity.BlogPost, error) {
	args := m.Called(ctx, actorID, id, in)
	p, _ := args.Get(0).(*entity.BlogPost)
	return p, args.Error(1)
}

func (m *MockBlogService) Delete(ctx context.Context, actorID, id string) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func eventArg(args mock.Arguments, i int) *entity.Event {
	e, _ := args.Get(i).(*entity.Event)
	return e
}

func eventsArg(args mock.Arguments, i int) []*entity.Event {
	es, _ := args.Get(i).([]*entity.Event)
	return es
}
