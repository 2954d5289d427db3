package domain

import "context"

// Event is the single event this deployment takes RSVPs for.
// swagger:model Event
type Event struct {
	ID   int64  `json:"id"`
	Name string `json:"event_name"`
	// GuestCount is a denormalized cache of the number of RSVPs.
	GuestCount int `json:"guest_count"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*Event, error)
	// UpdateGuestCount overwrites guest_count; the last writer wins.
	UpdateGuestCount(ctx context.Context, id int64, guestCount int) error
}
