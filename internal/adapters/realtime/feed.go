// Package realtime turns Postgres NOTIFY payloads into filtered change
// notifications for in-process subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"

	"rsvpdemo/internal/domain"
	"rsvpdemo/internal/metrics"
)

// Listener is the part of *pq.Listener the feed depends on.
type Listener interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Close() error
}

// NewListener opens a pq.Listener that logs connection state changes.
// Reconnects are handled by pq; notifications sent while disconnected are lost.
func NewListener(dbURL string, logger *slog.Logger) *pq.Listener {
	return pq.NewListener(dbURL, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected:
			logger.Info("realtime listener connected")
		case pq.ListenerEventDisconnected:
			logger.Warn("realtime listener disconnected", "err", err)
		case pq.ListenerEventReconnected:
			logger.Info("realtime listener reconnected")
		case pq.ListenerEventConnectionAttemptFailed:
			logger.Warn("realtime listener connection attempt failed", "err", err)
		}
	})
}

var errFeedClosed = errors.New("realtime feed closed")

type subscriber struct {
	filter  domain.ChangeFilter
	handler domain.ChangeHandler
}

// Feed implements domain.ChangeFeed on top of a single LISTEN channel.
type Feed struct {
	listener Listener
	channel  string
	logger   *slog.Logger

	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID uint64
	closed bool
}

// NewFeed returns a Feed reading notifications for channel from listener.
func NewFeed(listener Listener, channel string, logger *slog.Logger) *Feed {
	return &Feed{
		listener: listener,
		channel:  channel,
		logger:   logger,
		subs:     make(map[uint64]*subscriber),
	}
}

// Start issues LISTEN on the feed's channel.
func (f *Feed) Start() error {
	if err := f.listener.Listen(f.channel); err != nil {
		return fmt.Errorf("listen %s: %w", f.channel, err)
	}
	return nil
}

// Run delivers notifications to subscribers until ctx is done or the listener closes.
func (f *Feed) Run(ctx context.Context) {
	notifications := f.listener.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			// pq sends nil after a reconnect.
			if n == nil {
				f.logger.Info("realtime listener re-established, notifications may have been missed")
				continue
			}
			f.dispatch(n.Extra)
		}
	}
}

func (f *Feed) dispatch(payload string) {
	var change domain.Change
	if err := json.Unmarshal([]byte(payload), &change); err != nil || change.Record == nil {
		metrics.RealtimeNotifications.WithLabelValues("malformed").Inc()
		f.logger.Warn("dropping malformed change notification", "payload", payload, "err", err)
		return
	}
	metrics.RealtimeNotifications.WithLabelValues("received").Inc()

	f.mu.RLock()
	handlers := make([]domain.ChangeHandler, 0, len(f.subs))
	for _, s := range f.subs {
		if s.filter.Matches(&change) {
			handlers = append(handlers, s.handler)
		}
	}
	f.mu.RUnlock()

	for _, h := range handlers {
		// Each subscriber gets its own copy of the record.
		rec := *change.Record
		h(&domain.Change{Type: change.Type, Table: change.Table, Record: &rec})
	}
}

// Subscribe registers handler for changes matching filter. The context is unused;
// the subscription lives until Close.
func (f *Feed) Subscribe(_ context.Context, filter domain.ChangeFilter, handler domain.ChangeHandler) (domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, errFeedClosed
	}
	f.nextID++
	id := f.nextID
	f.subs[id] = &subscriber{filter: filter, handler: handler}
	metrics.RealtimeSubscriptions.Inc()
	return &subscription{feed: f, id: id}, nil
}

func (f *Feed) unsubscribe(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[id]; ok {
		delete(f.subs, id)
		metrics.RealtimeSubscriptions.Dec()
	}
}

// Subscribers returns the number of open subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

// Close drops all subscriptions and closes the listener.
func (f *Feed) Close() error {
	f.mu.Lock()
	f.closed = true
	metrics.RealtimeSubscriptions.Sub(float64(len(f.subs)))
	f.subs = make(map[uint64]*subscriber)
	f.mu.Unlock()
	return f.listener.Close()
}

type subscription struct {
	feed *Feed
	id   uint64
	once sync.Once
}

func (s *subscription) Close() error {
	s.once.Do(func() { s.feed.unsubscribe(s.id) })
	return nil
}
