package postgres

import (
	"context"
	"database/sql"

	"rsvpdemo/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, name, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, rsvp.EventID, rsvp.Name, rsvp.Email).Scan(&rsvp.ID)
}

func (r *rsvpRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.RSVP, error) {
	query := `
		SELECT id, event_id, name, email
		FROM rsvps
		WHERE event_id = $1
		ORDER BY id
	`
	return r.list(ctx, query, eventID)
}

// ListByEventAndEmail matches email exactly as stored.
func (r *rsvpRepository) ListByEventAndEmail(ctx context.Context, eventID int64, email string) ([]*domain.RSVP, error) {
	query := `
		SELECT id, event_id, name, email
		FROM rsvps
		WHERE email = $1 AND event_id = $2
	`
	return r.list(ctx, query, email, eventID)
}

func (r *rsvpRepository) list(ctx context.Context, query string, args ...any) ([]*domain.RSVP, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp := &domain.RSVP{}
		if err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.Name, &rsvp.Email); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rsvps, nil
}
