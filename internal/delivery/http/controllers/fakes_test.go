package controllers

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"rsvpdemo/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeForm implements domain.RSVPForm for handler tests.
type fakeForm struct {
	mu          sync.Mutex
	state       domain.FormState
	submitErr   error
	activateErr error
	lastName    string
	lastEmail   string
	submits     int
	loads       int
	active      bool
	// reload is applied to the state on LoadAttendees, standing in for the store.
	reload      func(s *domain.FormState)
	activations int
	deactivated int
	observers   map[int]func()
	nextObs     int
}

func newFakeForm() *fakeForm {
	return &fakeForm{observers: make(map[int]func())}
}

func (f *fakeForm) LoadEvent(context.Context) {}

func (f *fakeForm) LoadAttendees(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.reload != nil {
		f.reload(&f.state)
	}
}

func (f *fakeForm) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *fakeForm) Activate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.activateErr != nil {
		return f.activateErr
	}
	f.activations++
	f.active = true
	return nil
}

func (f *fakeForm) Deactivate() {
	f.mu.Lock()
	f.deactivated++
	f.active = false
	f.mu.Unlock()
}

func (f *fakeForm) Submit(_ context.Context, name, email string) error {
	f.mu.Lock()
	f.submits++
	f.lastName, f.lastEmail = name, email
	f.mu.Unlock()
	return f.submitErr
}

func (f *fakeForm) Snapshot() *domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	s.Attendees = append([]*domain.RSVP(nil), f.state.Attendees...)
	if f.state.Event != nil {
		ev := *f.state.Event
		s.Event = &ev
	}
	return &s
}

func (f *fakeForm) OnChange(fn func()) (remove func()) {
	f.mu.Lock()
	id := f.nextObs
	f.nextObs++
	f.observers[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.observers, id)
		f.mu.Unlock()
	}
}

// update changes the state and notifies observers the way the real form does.
func (f *fakeForm) update(fn func(s *domain.FormState)) {
	f.mu.Lock()
	fn(&f.state)
	fns := make([]func(), 0, len(f.observers))
	for _, o := range f.observers {
		fns = append(fns, o)
	}
	f.mu.Unlock()
	for _, o := range fns {
		o()
	}
}

func (f *fakeForm) counts() (activations, deactivated, observers int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activations, f.deactivated, len(f.observers)
}

// fakeRegistry implements domain.FormRegistry for handler tests.
type fakeRegistry struct {
	mu    sync.Mutex
	forms map[string]*fakeForm
	gets  []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{forms: make(map[string]*fakeForm)}
}

func (r *fakeRegistry) Get(_ context.Context, sessionID string) domain.RSVPForm {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets = append(r.gets, sessionID)
	f, ok := r.forms[sessionID]
	if !ok {
		f = newFakeForm()
		r.forms[sessionID] = f
	}
	return f
}

func (r *fakeRegistry) Close() {}

func (r *fakeRegistry) form(sessionID string) *fakeForm {
	return r.Get(context.Background(), sessionID).(*fakeForm)
}
