package controllers

import "rsvpdemo/internal/domain"

// StateResponse is the rendered form state sent to the page, both as JSON and over the websocket.
// swagger:model StateResponse
type StateResponse struct {
	EventName   string         `json:"event_name"`
	EventLoaded bool           `json:"event_loaded"`
	GuestCount  int            `json:"guest_count"`
	Attendees   []*domain.RSVP `json:"attendees"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Message     string         `json:"message"`
	Success     bool           `json:"success"`
}

// NewStateResponse flattens a form snapshot for rendering.
func NewStateResponse(s *domain.FormState) StateResponse {
	attendees := s.Attendees
	if attendees == nil {
		attendees = []*domain.RSVP{}
	}
	return StateResponse{
		EventName:   s.EventName(),
		EventLoaded: s.Event != nil,
		GuestCount:  s.GuestCount(),
		Attendees:   attendees,
		Name:        s.Name,
		Email:       s.Email,
		Message:     s.Message,
		Success:     s.Success,
	}
}
