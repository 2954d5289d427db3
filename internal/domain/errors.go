package domain

import "errors"

// Sentinel errors shared across layers.
var (
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a submission is missing a required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateRSVP is returned when the email already has an RSVP for the event.
	ErrDuplicateRSVP = errors.New("rsvp already exists for this email")
)
