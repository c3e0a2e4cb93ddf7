package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/internal/domain/repository"
	"github.com/oksasatya/go-community-events/pkg/notify"
)

// memStore is an in-memory gateway with the same conditional-write contract as the postgres
// repositories: membership changes are checked and applied under one lock.
type memStore struct {
	mu        sync.Mutex
	seq       int
	users     map[string]*entity.User
	events    map[string]*entity.Event
	members   map[string][]string
	donations []*entity.Donation
	posts     map[string]*entity.BlogPost

	// failWith makes every call fail with the given error when set.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*entity.User{},
		events:  map[string]*entity.Event{},
		members: map[string][]string{},
		posts:   map[string]*entity.BlogPost{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) addUser(u *entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = s.nextID("user")
	}
	if u.UserType == "" {
		u.UserType = entity.UserTypeRegular
	}
	cp := *u
	s.users[u.ID] = &cp
	return u
}

func (s *memStore) addEvent(e *entity.Event) *entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = s.nextID("event")
	}
	cp := *e
	cp.Participants = nil
	s.events[e.ID] = &cp
	s.members[e.ID] = append([]string(nil), e.Participants...)
	return e
}

// users view

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.addUser(u)
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.projectUser(u), nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return r.projectUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) ListByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, r.projectUser(u))
		}
	}
	return out, nil
}

func (r memUsers) UpdateProfile(_ context.Context, id string, fn func(u *entity.User) error) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	stored, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.projectUser(stored)
	if err := fn(u); err != nil {
		return nil, err
	}
	next := *stored
	next.Name, next.Phone, next.DOB = u.Name, u.Phone, u.DOB
	next.Location, next.ProfilePicture, next.Interests = u.Location, u.ProfilePicture, u.Interests
	r.users[id] = &next
	return r.projectUser(&next), nil
}

func (s *memStore) projectUser(u *entity.User) *entity.User {
	cp := *u
	cp.JoinedEvents = []string{}
	cp.CreatedEvents = []string{}
	cp.Donations = []string{}
	cp.BlogPosts = []string{}
	for _, id := range s.sortedEventIDs() {
		for _, m := range s.members[id] {
			if m == u.ID {
				cp.JoinedEvents = append(cp.JoinedEvents, id)
			}
		}
		if s.events[id].CreatorID == u.ID {
			cp.CreatedEvents = append(cp.CreatedEvents, id)
		}
	}
	for _, d := range s.donations {
		if d.DonorID == u.ID {
			cp.Donations = append(cp.Donations, d.ID)
		}
	}
	return &cp
}

func (s *memStore) sortedEventIDs() []string {
	ids := make([]string, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// events view

type memEvents struct{ *memStore }

func (r memEvents) Create(_ context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[e.CreatorID]; !ok {
		return repository.ErrNotFound
	}
	e.ID = r.nextID("event")
	cp := *e
	r.events[e.ID] = &cp
	r.members[e.ID] = nil
	return nil
}

func (r memEvents) GetByID(_ context.Context, id string) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	e, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.projectEvent(e), nil
}

func (r memEvents) Find(_ context.Context, f repository.EventFilter) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := []*entity.Event{}
	for _, id := range r.sortedEventIDs() {
		e := r.events[id]
		if f.Search != "" && !containsFold(e.Title, f.Search) && !containsFold(e.Description, f.Search) {
			continue
		}
		if f.Location != "" && !containsFold(e.Location, f.Location) {
			continue
		}
		if f.StartDate != nil && e.StartDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.EndDate.After(*f.EndDate) {
			continue
		}
		if len(f.Tags) > 0 && !overlaps(e.Tags, f.Tags) {
			continue
		}
		out = append(out, r.projectEvent(e))
	}
	return out, nil
}

func (r memEvents) ListByIDs(_ context.Context, ids []string) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Event{}
	for _, id := range ids {
		if e, ok := r.events[id]; ok {
			out = append(out, r.projectEvent(e))
		}
	}
	return out, nil
}

func (r memEvents) Update(_ context.Context, id string, fn func(e *entity.Event) error) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	stored, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := r.projectEvent(stored)
	if err := fn(e); err != nil {
		return nil, err
	}
	if e.Capacity < len(r.members[id]) {
		return nil, repository.ErrCapacityBelowEnrollment
	}
	cp := *e
	cp.Participants = nil
	cp.Donations = nil
	r.events[id] = &cp
	return r.projectEvent(&cp), nil
}

func (r memEvents) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.events, id)
	delete(r.members, id)
	return nil
}

func (r memEvents) AddParticipant(_ context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	for _, m := range r.members[eventID] {
		if m == userID {
			return repository.ErrAlreadyParticipating
		}
	}
	if len(r.members[eventID]) >= e.Capacity {
		return repository.ErrCapacityReached
	}
	r.members[eventID] = append(r.members[eventID], userID)
	return nil
}

func (r memEvents) RemoveParticipant(_ context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[eventID]; !ok {
		return repository.ErrNotFound
	}
	list := r.members[eventID]
	for i, m := range list {
		if m == userID {
			r.members[eventID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotParticipating
}

func (s *memStore) projectEvent(e *entity.Event) *entity.Event {
	cp := *e
	cp.Tags = append([]string{}, e.Tags...)
	cp.Participants = append([]string{}, s.members[e.ID]...)
	cp.Donations = []string{}
	for _, d := range s.donations {
		if d.EventID == e.ID {
			cp.Donations = append(cp.Donations, d.ID)
		}
	}
	return &cp
}

// donations view

type memDonations struct{ *memStore }

func (r memDonations) Create(_ context.Context, d *entity.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[d.DonorID]; !ok {
		return repository.ErrUserNotFound
	}
	d.ID = r.nextID("donation")
	cp := *d
	r.donations = append(r.donations, &cp)
	return nil
}

func (r memDonations) ListByDonor(_ context.Context, donorID string) ([]*entity.Donation, error) {
	return r.filter(func(d *entity.Donation) bool { return d.DonorID == donorID }), nil
}

func (r memDonations) ListByEvent(_ context.Context, eventID string) ([]*entity.Donation, error) {
	return r.filter(func(d *entity.Donation) bool { return d.EventID == eventID }), nil
}

func (r memDonations) filter(keep func(*entity.Donation) bool) []*entity.Donation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Donation{}
	for _, d := range r.donations {
		if keep(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out
}

// blog view

type memBlog struct{ *memStore }

func (r memBlog) Create(_ context.Context, p *entity.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID("post")
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r memBlog) GetByID(_ context.Context, id string) (*entity.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memBlog) List(_ context.Context) ([]*entity.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.BlogPost{}
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memBlog) Update(_ context.Context, id string, fn func(p *entity.BlogPost) error) (*entity.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := *stored
	if err := fn(&p); err != nil {
		return nil, err
	}
	r.posts[id] = &p
	out := p
	return &out, nil
}

func (r memBlog) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// recordingNotifier captures queued messages.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
	reject   bool
}

func (n *recordingNotifier) Notify(m notify.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.reject {
		return false
	}
	n.messages = append(n.messages, m)
	return true
}

func (n *recordingNotifier) sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}

func (n *recordingNotifier) recipients(subject string) []string {
	var out []string
	for _, m := range n.sent() {
		if m.Subject == subject {
			out = append(out, m.To)
		}
	}
	sort.Strings(out)
	return out
}

type MockEventIndex struct {
	mock.Mock
}

func (m *MockEventIndex) Index(ctx context.Context, e *entity.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventIndex) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEventIndex) Search(ctx context.Context, query string, size int) ([]string, error) {
	args := m.Called(ctx, query, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, objectPath, contentType, r)
	return args.String(0), args.Error(1)
}

type fixture struct {
	store     *memStore
	notifier  *recordingNotifier
	events    *EventService
	members   *MembershipService
	donations *DonationService
}

func newFixture() *fixture {
	store := newMemStore()
	n := &recordingNotifier{}
	users := memUsers{store}
	events := memEvents{store}
	return &fixture{
		store:     store,
		notifier:  n,
		events:    NewEventService(events, users, n, nil, nil, nil),
		members:   NewMembershipService(events, users, n, nil),
		donations: NewDonationService(memDonations{store}, events, users, n, nil),
	}
}

func (f *fixture) user(name string) *entity.User {
	return f.store.addUser(&entity.User{Name: name, Email: strings.ToLower(name) + "@example.com"})
}

func (f *fixture) admin(name string) *entity.User {
	return f.store.addUser(&entity.User{Name: name, Email: strings.ToLower(name) + "@example.com", UserType: entity.UserTypeAdmin})
}
