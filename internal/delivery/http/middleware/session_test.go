package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rsvpdemo/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokens implements domain.SessionTokenIssuer and domain.SessionTokenVerifier for tests.
type fakeTokens struct {
	valid     map[string]string
	issueErr  error
	issuedFor string
}

func (f *fakeTokens) Issue(sessionID string, _ time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.issuedFor = sessionID
	return "token-" + sessionID, nil
}

func (f *fakeTokens) Verify(token string) (string, error) {
	if id, ok := f.valid[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func TestSession(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name          string
		cookie        string
		newIDErr      error
		issueErr      error
		wantStatus    int
		wantSessionID string
		wantSetCookie bool
		nextCalled    bool
	}{
		{
			name:          "valid cookie reuses session",
			cookie:        "good",
			wantStatus:    http.StatusOK,
			wantSessionID: "existing",
			nextCalled:    true,
		},
		{
			name:          "missing cookie starts session",
			wantStatus:    http.StatusOK,
			wantSessionID: "fresh",
			wantSetCookie: true,
			nextCalled:    true,
		},
		{
			name:          "invalid cookie starts session",
			cookie:        "forged",
			wantStatus:    http.StatusOK,
			wantSessionID: "fresh",
			wantSetCookie: true,
			nextCalled:    true,
		},
		{
			name:       "id generation failure",
			newIDErr:   errors.New("entropy"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "issue failure",
			issueErr:   errors.New("sign"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokens{valid: map[string]string{"good": "existing"}, issueErr: tt.issueErr}
			mw := Session(SessionOptions{
				Issuer:   tokens,
				Verifier: tokens,
				NewID: func() (string, error) {
					return "fresh", tt.newIDErr
				},
				Lifetime: time.Hour,
				Logger:   logger,
			})

			var called bool
			var gotID string
			handler := mw(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotID, _ = SessionIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.nextCalled, called)
			assert.Equal(t, tt.wantSessionID, gotID)

			cookies := rr.Result().Cookies()
			if tt.wantSetCookie {
				require.Len(t, cookies, 1)
				assert.Equal(t, SessionCookieName, cookies[0].Name)
				assert.Equal(t, "token-fresh", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
				assert.Equal(t, 3600, cookies[0].MaxAge)
			} else {
				assert.Empty(t, cookies)
			}
			if !tt.nextCalled {
				var resp helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, helpers.ErrCodeInternalError, resp.Error.Code)
			}
		})
	}
}

func TestSessionIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := SessionIDFromContext(req.Context())
	assert.False(t, ok)
}
