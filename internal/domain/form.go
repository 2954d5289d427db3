package domain

import "context"

// User-facing form messages.
const (
	MsgFillAllFields     = "please fill in all fields"
	MsgDuplicateCheck    = "error checking for duplicates"
	MsgDuplicateRSVP     = "an rsvp with this email already exists for this event"
	MsgSubmitFailed      = "error while submitting your rsvp"
	MsgSubmitSucceeded   = "rsvp submitted successfully"
	MsgFieldTooLong      = "name or email is too long"
	EventNamePlaceholder = "loading event..."
)

// FormState is a point-in-time copy of an RSVP form, used for rendering.
// swagger:model FormState
type FormState struct {
	Event     *Event  `json:"event"`
	Attendees []*RSVP `json:"attendees"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Message   string  `json:"message"`
	Success   bool    `json:"success"`
}

// GuestCount is the event's cached count once loaded, otherwise the attendee list length.
func (s *FormState) GuestCount() int {
	if s.Event != nil {
		return s.Event.GuestCount
	}
	return len(s.Attendees)
}

// EventName returns the loaded event's name or a loading placeholder.
func (s *FormState) EventName() string {
	if s.Event != nil {
		return s.Event.Name
	}
	return EventNamePlaceholder
}

// RSVPForm is the view model behind the RSVP page.
type RSVPForm interface {
	// LoadEvent fetches the event; on failure prior state is kept.
	LoadEvent(ctx context.Context)
	// LoadAttendees replaces the attendee list; on failure prior state is kept.
	LoadAttendees(ctx context.Context)
	// Activate opens the realtime subscription. It is a no-op when already active.
	Activate(ctx context.Context) error
	// Deactivate releases the realtime subscription. It is idempotent.
	Deactivate()
	// Active reports whether the realtime subscription is open.
	Active() bool
	// Submit validates and stores a new RSVP. The outcome is reflected in the form
	// message; the returned error classifies it.
	Submit(ctx context.Context, name, email string) error
	Snapshot() *FormState
	// OnChange registers fn to run after every state change and returns a func that removes it.
	OnChange(fn func()) (remove func())
}

// FormRegistry hands out one RSVPForm per browser session. Forms are returned
// unloaded; views call LoadEvent and LoadAttendees when they mount.
type FormRegistry interface {
	Get(ctx context.Context, sessionID string) RSVPForm
	Close()
}
