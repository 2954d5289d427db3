package http

import (
	"encoding/json"
	"net/http"

	"github.com/didip/tollbooth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"rsvpdemo/internal/delivery/http/controllers"
	"rsvpdemo/internal/delivery/http/helpers"
)

// rateLimitMessage is the envelope body tollbooth writes with a 429.
var rateLimitMessage = func() string {
	b, _ := json.Marshal(helpers.APIResponse{
		Error: &helpers.APIError{Code: helpers.ErrCodeTooManyRequests, Message: "too many submissions, try again shortly"},
	})
	return string(b)
}()

// SessionWrapper resolves the browser session before a handler runs.
type SessionWrapper func(http.HandlerFunc) http.HandlerFunc

// NewRouter initializes the HTTP router with all application routes.
// submitRate is the number of RSVP submissions per second allowed per client IP.
func NewRouter(
	rsvpController *controllers.RSVPController,
	realtimeController *controllers.RealtimeController,
	healthController *controllers.HealthController,
	withSession SessionWrapper,
	submitRate float64,
) *http.ServeMux {
	mux := http.NewServeMux()

	lmt := tollbooth.NewLimiter(submitRate, nil)
	lmt.SetMessage(rateLimitMessage)
	lmt.SetMessageContentType("application/json")

	// Page
	mux.HandleFunc("GET /{$}", withSession(rsvpController.Page))
	mux.Handle("POST /rsvp", tollbooth.LimitFuncHandler(lmt, withSession(rsvpController.SubmitForm)))

	// API Routes
	mux.HandleFunc("GET /api/state", withSession(rsvpController.GetState))
	mux.Handle("POST /api/rsvps", tollbooth.LimitFuncHandler(lmt, withSession(rsvpController.SubmitRSVP)))

	// Live updates
	mux.HandleFunc("GET /ws", withSession(realtimeController.Stream))

	// Ops
	mux.HandleFunc("GET /healthz", healthController.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
