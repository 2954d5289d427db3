package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "rsvpdemo/internal/delivery/http/helpers"
	"rsvpdemo/internal/domain"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "rsvp_session"

// SetSessionID returns a context with the session ID set. Used by the session middleware.
func SetSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext returns the browser session ID from the context, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// SessionOptions configures the Session middleware.
type SessionOptions struct {
	Issuer   domain.SessionTokenIssuer
	Verifier domain.SessionTokenVerifier
	// NewID generates a fresh session ID.
	NewID func() (string, error)
	// Lifetime is the cookie and token lifetime.
	Lifetime time.Duration
	// Secure marks the cookie Secure (production).
	Secure bool
	Logger *slog.Logger
}

// Session returns a wrapper that resolves the caller's browser session from the
// rsvp_session cookie and sets its ID in the request context. A missing or invalid
// cookie starts a new session and sets a fresh cookie before calling next.
func Session(opts SessionOptions) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
				if sessionID, err := opts.Verifier.Verify(c.Value); err == nil {
					next(w, r.WithContext(SetSessionID(r.Context(), sessionID)))
					return
				}
				opts.Logger.Debug("discarding invalid session cookie")
			}

			sessionID, err := opts.NewID()
			if err != nil {
				opts.Logger.Error("failed to create session", "error", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not start session")
				return
			}
			token, err := opts.Issuer.Issue(sessionID, opts.Lifetime)
			if err != nil {
				opts.Logger.Error("failed to issue session token", "error", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not start session")
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(opts.Lifetime.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			next(w, r.WithContext(SetSessionID(r.Context(), sessionID)))
		}
	}
}
