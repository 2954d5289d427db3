package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

// ChangesChannel is the NOTIFY channel the rsvps trigger publishes inserts on.
const ChangesChannel = "rsvps_changes"

//go:embed schema.sql
var schemaSQL string

// Migrate creates the tables and notify trigger if missing and seeds the demo event.
// An existing event row is left untouched.
func Migrate(ctx context.Context, db *sql.DB, eventID int64, eventName string) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	seed := `
		INSERT INTO "Events" (id, event_name, guest_count)
		VALUES ($1, $2, 0)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := db.ExecContext(ctx, seed, eventID, eventName); err != nil {
		return fmt.Errorf("seed event: %w", err)
	}
	// The seed bypasses the sequence; move it past the highest id.
	resync := `SELECT setval(pg_get_serial_sequence('"Events"', 'id'), (SELECT MAX(id) FROM "Events"))`
	if _, err := db.ExecContext(ctx, resync); err != nil {
		return fmt.Errorf("resync event sequence: %w", err)
	}
	return nil
}
