package domain

import "time"

// SessionTokenIssuer issues signed tokens carrying a browser session ID.
type SessionTokenIssuer interface {
	Issue(sessionID string, expiry time.Duration) (string, error)
}

// SessionTokenVerifier verifies a token and returns the session ID it carries.
type SessionTokenVerifier interface {
	Verify(token string) (sessionID string, err error)
}
