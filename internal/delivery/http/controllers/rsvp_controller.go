package controllers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"rsvpdemo/internal/delivery/http/helpers"
	"rsvpdemo/internal/delivery/http/middleware"
	"rsvpdemo/internal/domain"
)

//go:embed templates/*.html
var pageFS embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFS, "templates/index.html"))

// SubmitRSVPRequest is the body for POST /api/rsvps and the form for POST /rsvp.
// Blank values are accepted here; the form reports them as a message.
type SubmitRSVPRequest struct {
	Name  string `json:"name" schema:"name"`
	Email string `json:"email" schema:"email"`
}

// StateSuccessResponse is the success response envelope carrying the form state.
type StateSuccessResponse struct {
	Data  StateResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StateErrorResponse is the error envelope for a rejected submission; data carries the form state.
type StateErrorResponse struct {
	Data  StateResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RSVPController struct {
	Logger *slog.Logger
	Forms  domain.FormRegistry
}

func NewRSVPController(logger *slog.Logger, forms domain.FormRegistry) *RSVPController {
	return &RSVPController{
		Logger: logger,
		Forms:  forms,
	}
}

// form returns the caller's form, or writes a 500 and returns nil when the request has no session.
func (c *RSVPController) form(w http.ResponseWriter, r *http.Request) domain.RSVPForm {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "missing session")
		return nil
	}
	return c.Forms.Get(r.Context(), sessionID)
}

// mount reloads the event and attendee list, as every view does when it is shown.
func mount(ctx context.Context, form domain.RSVPForm) {
	form.LoadEvent(ctx)
	form.LoadAttendees(ctx)
}

// Page renders the RSVP page for the caller's session.
func (c *RSVPController) Page(w http.ResponseWriter, r *http.Request) {
	form := c.form(w, r)
	if form == nil {
		return
	}
	mount(r.Context(), form)
	c.render(w, r, form.Snapshot())
}

// SubmitForm handles the plain HTML form post and redirects back to the page,
// which shows the outcome from the form message.
func (c *RSVPController) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var req SubmitRSVPRequest
	if !helpers.DecodeForm(w, r, &req) {
		return
	}
	form := c.form(w, r)
	if form == nil {
		return
	}
	_ = form.Submit(r.Context(), req.Name, req.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *RSVPController) render(w http.ResponseWriter, r *http.Request, s *domain.FormState) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, NewStateResponse(s)); err != nil {
		c.Logger.ErrorContext(r.Context(), "failed to render page", "err", err)
	}
}

// GetState godoc
// @Summary Get the RSVP form state
// @Description Reloads and returns the caller's session view: event name, guest count, attendee list, form fields and the last message.
// @Tags rsvps
// @Produce json
// @Success 200 {object} controllers.StateSuccessResponse "data contains the form state"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/state [get]
func (c *RSVPController) GetState(w http.ResponseWriter, r *http.Request) {
	form := c.form(w, r)
	if form == nil {
		return
	}
	mount(r.Context(), form)
	helpers.WriteJSONSuccess(w, http.StatusOK, NewStateResponse(form.Snapshot()))
}

// SubmitRSVP godoc
// @Summary Submit an RSVP
// @Description Submit name and email for the event. Blank fields and an email that already responded are rejected. The new attendee reaches the list through the live update channel.
// @Tags rsvps
// @Accept json
// @Produce json
// @Param rsvp body SubmitRSVPRequest true "Attendee name and email"
// @Success 201 {object} controllers.StateSuccessResponse "data contains the form state"
// @Failure 400 {object} controllers.StateErrorResponse "error.code: bad_request (blank or too long fields)"
// @Failure 409 {object} controllers.StateErrorResponse "error.code: conflict"
// @Failure 429 {string} string "rate limited"
// @Failure 500 {object} controllers.StateErrorResponse "error.code: internal_error"
// @Router /api/rsvps [post]
func (c *RSVPController) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req SubmitRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	form := c.form(w, r)
	if form == nil {
		return
	}
	err := form.Submit(r.Context(), req.Name, req.Email)
	if err == nil && !form.Active() {
		// Without a live subscription the new record only shows up on reload.
		form.LoadAttendees(r.Context())
	}
	state := NewStateResponse(form.Snapshot())
	if err == nil {
		helpers.WriteJSONSuccess(w, http.StatusCreated, state)
		return
	}

	status, code := http.StatusInternalServerError, helpers.ErrCodeInternalError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = http.StatusBadRequest, helpers.ErrCodeBadRequest
	case errors.Is(err, domain.ErrDuplicateRSVP):
		status, code = http.StatusConflict, helpers.ErrCodeConflict
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSON(w, status, helpers.APIResponse{
		Data:  state,
		Error: &helpers.APIError{Code: code, Message: state.Message},
	})
}
