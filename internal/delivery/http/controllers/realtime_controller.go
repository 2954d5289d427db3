package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"rsvpdemo/internal/delivery/http/helpers"
	"rsvpdemo/internal/delivery/http/middleware"
	"rsvpdemo/internal/domain"
	"rsvpdemo/internal/metrics"
)

// pingPeriod stays below config.MinSessionTTL so an open page keeps its session.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// RealtimeController pushes form snapshots to the page over a websocket.
// A session's form stays subscribed to live inserts while at least one of its
// pages is connected.
type RealtimeController struct {
	Logger   *slog.Logger
	Forms    domain.FormRegistry
	upgrader websocket.Upgrader

	mu      sync.Mutex
	streams map[string]int
}

// NewRealtimeController accepts same-host websocket origins plus allowedOrigins.
func NewRealtimeController(logger *slog.Logger, forms domain.FormRegistry, allowedOrigins []string) *RealtimeController {
	allowed := middleware.NormalizeOrigins(allowedOrigins)
	return &RealtimeController{
		Logger:  logger,
		Forms:   forms,
		streams: make(map[string]int),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

// Stream upgrades GET /ws. It subscribes and reloads the session's form, sends the
// current snapshot, then a new one after every change, until the client goes away.
func (c *RealtimeController) Stream(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "missing session")
		return
	}
	form := c.Forms.Get(r.Context(), sessionID)

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		c.Logger.WarnContext(r.Context(), "websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	metrics.WebsocketConnections.Inc()
	defer metrics.WebsocketConnections.Dec()

	if err := c.acquire(r, sessionID, form); err != nil {
		c.Logger.ErrorContext(r.Context(), "failed to activate live updates", "err", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "live updates unavailable"),
			time.Now().Add(writeWait))
		return
	}
	defer c.release(sessionID, form)
	// Inserts made while no page of this session was connected were missed.
	mount(r.Context(), form)

	changed := make(chan struct{}, 1)
	remove := form.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer remove()

	done := make(chan struct{})
	go c.readLoop(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := c.push(conn, form); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-changed:
			if err := c.push(conn, form); err != nil {
				c.Logger.Debug("websocket write failed", "err", err)
				return
			}
		case <-ticker.C:
			// Keeps the session from expiring while the page is open.
			c.Forms.Get(r.Context(), sessionID)
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *RealtimeController) push(conn *websocket.Conn, form domain.RSVPForm) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(helpers.APIResponse{Data: NewStateResponse(form.Snapshot())})
}

// readLoop drains client frames so pongs and close frames are processed.
func (c *RealtimeController) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *RealtimeController) acquire(r *http.Request, sessionID string, form domain.RSVPForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.streams[sessionID] == 0 {
		if err := form.Activate(r.Context()); err != nil {
			return err
		}
	}
	c.streams[sessionID]++
	return nil
}

func (c *RealtimeController) release(sessionID string, form domain.RSVPForm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.streams[sessionID]--
	if c.streams[sessionID] <= 0 {
		delete(c.streams, sessionID)
		form.Deactivate()
	}
}
