package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"rsvpdemo/internal/domain"
	"rsvpdemo/internal/metrics"
)

// FormFactory builds a fresh, unloaded form for a new session.
type FormFactory func() domain.RSVPForm

type sessionRegistry struct {
	forms   *cache.Cache
	newForm FormFactory
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewSessionRegistry returns a FormRegistry whose forms expire after ttl without
// a Get. Expired forms are deactivated.
func NewSessionRegistry(ttl time.Duration, newForm FormFactory, logger *slog.Logger) domain.FormRegistry {
	forms := cache.New(ttl, ttl/2)
	forms.OnEvicted(func(sessionID string, v interface{}) {
		v.(domain.RSVPForm).Deactivate()
		metrics.ActiveSessions.Dec()
		logger.Debug("session expired", "session_id", sessionID)
	})
	return &sessionRegistry{
		forms:   forms,
		newForm: newForm,
		logger:  logger,
	}
}

// Get returns the session's form, creating it on first use.
// Every call pushes the session's expiry back.
func (r *sessionRegistry) Get(ctx context.Context, sessionID string) domain.RSVPForm {
	r.mu.Lock()
	if v, ok := r.forms.Get(sessionID); ok {
		r.forms.Set(sessionID, v, cache.DefaultExpiration)
		r.mu.Unlock()
		return v.(domain.RSVPForm)
	}
	form := r.newForm()
	r.forms.Set(sessionID, form, cache.DefaultExpiration)
	r.mu.Unlock()

	metrics.ActiveSessions.Inc()
	r.logger.DebugContext(ctx, "session created", "session_id", sessionID)
	return form
}

// Close evicts every session, releasing their subscriptions.
func (r *sessionRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.forms.Items() {
		r.forms.Delete(id)
	}
}
