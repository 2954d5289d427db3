package domain

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Field limits, in characters. They keep the insert notification payload well
// under the store's 8000 byte limit.
const (
	MaxNameLength  = 200
	MaxEmailLength = 254
)

// RSVP is a single attendee's response to an event.
// swagger:model RSVP
type RSVP struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// NewRSVP returns an RSVP for the event. ID is set by the repository on create.
func NewRSVP(eventID int64, name, email string) *RSVP {
	return &RSVP{
		EventID: eventID,
		Name:    name,
		Email:   email,
	}
}

// Blank reports whether name or email is empty after trimming whitespace.
func (r *RSVP) Blank() bool {
	return strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == ""
}

// RSVPRepository defines storage operations for RSVP records.
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	ListByEventID(ctx context.Context, eventID int64) ([]*RSVP, error)
	ListByEventAndEmail(ctx context.Context, eventID int64, email string) ([]*RSVP, error)
}

// TooLong reports whether name or email exceeds its length limit.
func (r *RSVP) TooLong() bool {
	return utf8.RuneCountInString(r.Name) > MaxNameLength || utf8.RuneCountInString(r.Email) > MaxEmailLength
}
