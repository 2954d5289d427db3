package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"rsvpdemo/internal/domain"
	"rsvpdemo/internal/metrics"
)

const confirmationTimeout = 30 * time.Second

type rsvpForm struct {
	eventID   int64
	eventRepo domain.EventRepository
	rsvpRepo  domain.RSVPRepository
	feed      domain.ChangeFeed
	emails    domain.EmailService
	logger    *slog.Logger

	mu        sync.Mutex
	event     *domain.Event
	attendees []*domain.RSVP
	name      string
	email     string
	message   string
	success   bool
	sub       domain.Subscription
	observers map[int]func()
	nextObsID int
}

// NewRSVPForm creates the view model for the RSVP page of eventID.
// emails may be nil, in which case no confirmation is sent.
func NewRSVPForm(
	eventID int64,
	eventRepo domain.EventRepository,
	rsvpRepo domain.RSVPRepository,
	feed domain.ChangeFeed,
	emails domain.EmailService,
	logger *slog.Logger,
) domain.RSVPForm {
	return &rsvpForm{
		eventID:   eventID,
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
		feed:      feed,
		emails:    emails,
		logger:    logger,
		attendees: []*domain.RSVP{},
		observers: make(map[int]func()),
	}
}

func (f *rsvpForm) LoadEvent(ctx context.Context) {
	ev, err := f.eventRepo.GetByID(ctx, f.eventID)
	if err != nil {
		f.logger.ErrorContext(ctx, "error fetching event", "event_id", f.eventID, "err", err)
		return
	}
	f.mu.Lock()
	f.event = ev
	f.mu.Unlock()
	f.notify()
}

func (f *rsvpForm) LoadAttendees(ctx context.Context) {
	rsvps, err := f.rsvpRepo.ListByEventID(ctx, f.eventID)
	if err != nil {
		f.logger.ErrorContext(ctx, "error fetching rsvps", "event_id", f.eventID, "err", err)
		return
	}
	if rsvps == nil {
		rsvps = []*domain.RSVP{}
	}
	f.mu.Lock()
	f.attendees = rsvps
	f.mu.Unlock()
	f.notify()
}

func (f *rsvpForm) Activate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sub != nil {
		return nil
	}
	filter := domain.ChangeFilter{Table: "rsvps", Type: domain.ChangeInsert, EventID: f.eventID}
	sub, err := f.feed.Subscribe(ctx, filter, f.handleInsert)
	if err != nil {
		return fmt.Errorf("subscribe to rsvp inserts: %w", err)
	}
	f.sub = sub
	return nil
}

func (f *rsvpForm) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sub != nil
}

func (f *rsvpForm) Deactivate() {
	f.mu.Lock()
	sub := f.sub
	f.sub = nil
	f.mu.Unlock()
	if sub != nil {
		if err := sub.Close(); err != nil {
			f.logger.Warn("error closing rsvp subscription", "err", err)
		}
	}
}

// handleInsert merges a notified insert into local state. Records are not
// deduplicated by id, so this session's own insert is counted here as well.
func (f *rsvpForm) handleInsert(c *domain.Change) {
	f.mu.Lock()
	f.attendees = append(f.attendees, c.Record)
	if f.event != nil {
		f.event.GuestCount++
	}
	f.mu.Unlock()
	f.notify()
}

func (f *rsvpForm) Submit(ctx context.Context, name, email string) error {
	f.mu.Lock()
	f.name, f.email = name, email
	f.message = ""
	f.success = false
	// The count written back is based on what this session saw when the
	// submission started, not on the stored value.
	cached := 0
	if f.event != nil {
		cached = f.event.GuestCount
	}
	f.mu.Unlock()

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	rsvp := domain.NewRSVP(f.eventID, name, email)
	if rsvp.Blank() {
		metrics.RSVPSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		f.setMessage(domain.MsgFillAllFields)
		return domain.ErrInvalidInput
	}
	if rsvp.TooLong() {
		metrics.RSVPSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		f.setMessage(domain.MsgFieldTooLong)
		return domain.ErrInvalidInput
	}

	existing, err := f.rsvpRepo.ListByEventAndEmail(ctx, f.eventID, email)
	if err != nil {
		metrics.RSVPSubmissions.WithLabelValues(metrics.OutcomeCheckFailed).Inc()
		f.logger.ErrorContext(ctx, "error checking for duplicate rsvp", "event_id", f.eventID, "err", err)
		f.setMessage(domain.MsgDuplicateCheck)
		return fmt.Errorf("check duplicate rsvp: %w", err)
	}
	if len(existing) > 0 {
		metrics.RSVPSubmissions.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		f.setMessage(domain.MsgDuplicateRSVP)
		return domain.ErrDuplicateRSVP
	}

	if err := f.rsvpRepo.Create(ctx, rsvp); err != nil {
		metrics.RSVPSubmissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		f.logger.ErrorContext(ctx, "error inserting rsvp", "event_id", f.eventID, "err", err)
		f.setMessage(domain.MsgSubmitFailed)
		return fmt.Errorf("create rsvp: %w", err)
	}
	metrics.RSVPSubmissions.WithLabelValues(metrics.OutcomeCreated).Inc()

	f.mu.Lock()
	f.message = domain.MsgSubmitSucceeded
	f.success = true
	f.name, f.email = "", ""
	eventName := ""
	if f.event != nil {
		eventName = f.event.Name
	}
	f.mu.Unlock()
	f.notify()

	f.sendConfirmation(rsvp, eventName)

	newCount := cached + 1
	if err := f.eventRepo.UpdateGuestCount(ctx, f.eventID, newCount); err != nil {
		metrics.GuestCountWriteErrors.Inc()
		f.logger.ErrorContext(ctx, "error updating guest count", "event_id", f.eventID, "guest_count", newCount, "err", err)
		return nil
	}
	f.mu.Lock()
	if f.event != nil {
		f.event.GuestCount = newCount
	}
	f.mu.Unlock()
	f.notify()
	return nil
}

func (f *rsvpForm) sendConfirmation(rsvp *domain.RSVP, eventName string) {
	if f.emails == nil {
		return
	}
	data := &domain.RSVPConfirmationEmailData{Email: rsvp.Email, Name: rsvp.Name, EventName: eventName}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), confirmationTimeout)
		defer cancel()
		if err := f.emails.SendRSVPConfirmation(ctx, data); err != nil {
			f.logger.Warn("error sending rsvp confirmation", "err", err)
		}
	}()
}

func (f *rsvpForm) setMessage(msg string) {
	f.mu.Lock()
	f.message = msg
	f.success = false
	f.mu.Unlock()
	f.notify()
}

func (f *rsvpForm) Snapshot() *domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &domain.FormState{
		Attendees: make([]*domain.RSVP, len(f.attendees)),
		Name:      f.name,
		Email:     f.email,
		Message:   f.message,
		Success:   f.success,
	}
	for i, a := range f.attendees {
		rec := *a
		s.Attendees[i] = &rec
	}
	if f.event != nil {
		ev := *f.event
		s.Event = &ev
	}
	return s
}

func (f *rsvpForm) OnChange(fn func()) (remove func()) {
	f.mu.Lock()
	id := f.nextObsID
	f.nextObsID++
	f.observers[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.observers, id)
		f.mu.Unlock()
	}
}

func (f *rsvpForm) notify() {
	f.mu.Lock()
	fns := make([]func(), 0, len(f.observers))
	for _, fn := range f.observers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
