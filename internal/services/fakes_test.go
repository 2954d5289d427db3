package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"rsvpdemo/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockEventRepository struct {
	mu        sync.Mutex
	events    map[int64]*domain.Event
	getErr    error
	updateErr error
	updates   []int
}

func (m *mockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ev
	return &cp, nil
}

func (m *mockEventRepository) UpdateGuestCount(ctx context.Context, id int64, guestCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, guestCount)
	if m.updateErr != nil {
		return m.updateErr
	}
	ev, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	ev.GuestCount = guestCount
	return nil
}

func (m *mockEventRepository) stored(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[id].GuestCount
}

// mockRSVPRepository stores records in memory. onCreate runs after a successful
// insert, the way the store's trigger fires a notification.
type mockRSVPRepository struct {
	mu        sync.Mutex
	rsvps     []*domain.RSVP
	listErr   error
	checkErr  error
	createErr error
	calls     int
	creates   int
	onCreate  func(r *domain.RSVP)
}

func (m *mockRSVPRepository) Create(ctx context.Context, r *domain.RSVP) error {
	m.mu.Lock()
	m.calls++
	if m.createErr != nil {
		m.mu.Unlock()
		return m.createErr
	}
	m.creates++
	r.ID = int64(len(m.rsvps) + 1)
	cp := *r
	m.rsvps = append(m.rsvps, &cp)
	hook := m.onCreate
	m.mu.Unlock()
	if hook != nil {
		hook(&cp)
	}
	return nil
}

func (m *mockRSVPRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.RSVP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.RSVP
	for _, r := range m.rsvps {
		if r.EventID == eventID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRSVPRepository) ListByEventAndEmail(ctx context.Context, eventID int64, email string) ([]*domain.RSVP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.checkErr != nil {
		return nil, m.checkErr
	}
	var out []*domain.RSVP
	for _, r := range m.rsvps {
		if r.EventID == eventID && r.Email == email {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRSVPRepository) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockRSVPRepository) createCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}

// fakeFeed delivers published changes synchronously to matching subscribers.
type fakeFeed struct {
	mu      sync.Mutex
	subs    map[int]*fakeSub
	nextID  int
	err     error
	filters []domain.ChangeFilter
}

type fakeSub struct {
	feed    *fakeFeed
	id      int
	filter  domain.ChangeFilter
	handler domain.ChangeHandler
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{subs: make(map[int]*fakeSub)}
}

func (f *fakeFeed) Subscribe(ctx context.Context, filter domain.ChangeFilter, handler domain.ChangeHandler) (domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	s := &fakeSub{feed: f, id: f.nextID, filter: filter, handler: handler}
	f.subs[s.id] = s
	f.filters = append(f.filters, filter)
	return s, nil
}

func (s *fakeSub) Close() error {
	s.feed.mu.Lock()
	defer s.feed.mu.Unlock()
	delete(s.feed.subs, s.id)
	return nil
}

func (f *fakeFeed) publishInsert(r *domain.RSVP) {
	c := &domain.Change{Type: domain.ChangeInsert, Table: "rsvps", Record: r}
	f.mu.Lock()
	var handlers []domain.ChangeHandler
	for _, s := range f.subs {
		if s.filter.Matches(c) {
			handlers = append(handlers, s.handler)
		}
	}
	f.mu.Unlock()
	for _, h := range handlers {
		rec := *r
		h(&domain.Change{Type: c.Type, Table: c.Table, Record: &rec})
	}
}

func (f *fakeFeed) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

type fakeEmailService struct {
	sent chan *domain.RSVPConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendRSVPConfirmation(ctx context.Context, data *domain.RSVPConfirmationEmailData) error {
	f.sent <- data
	return f.err
}
