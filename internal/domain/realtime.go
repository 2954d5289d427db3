package domain

import "context"

// Change event types delivered by a ChangeFeed.
const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
)

// ChangeFilter selects which row changes a subscriber receives.
// A zero EventID matches every event.
type ChangeFilter struct {
	Table   string
	Type    string
	EventID int64
}

// Change is a single row-level change notification for the rsvps table.
type Change struct {
	Type   string `json:"type"`
	Table  string `json:"table"`
	Record *RSVP  `json:"record"`
}

// Matches reports whether the change passes the filter.
func (f ChangeFilter) Matches(c *Change) bool {
	if c == nil || c.Record == nil {
		return false
	}
	if f.Table != "" && f.Table != c.Table {
		return false
	}
	if f.Type != "" && f.Type != c.Type {
		return false
	}
	return f.EventID == 0 || f.EventID == c.Record.EventID
}

// ChangeHandler is called for every change matching a subscription's filter.
type ChangeHandler func(c *Change)

// Subscription is a live registration on a ChangeFeed. Close releases it and is idempotent.
type Subscription interface {
	Close() error
}

// ChangeFeed is a push-based stream of row-level changes in the backing store.
type ChangeFeed interface {
	Subscribe(ctx context.Context, filter ChangeFilter, handler ChangeHandler) (Subscription, error)
}
