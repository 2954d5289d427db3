package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "applies schema and seeds event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "Events"`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO "Events" \(id, event_name, guest_count\)`).
					WithArgs(int64(1), "Spring Social").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`SELECT setval`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "schema error stops before seeding",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "Events"`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
		{
			name: "seed error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "Events"`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO "Events"`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = Migrate(ctx, db, 1, "Spring Social")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSchemaDeclaresNotifyTrigger(t *testing.T) {
	require.Contains(t, schemaSQL, "pg_notify('"+ChangesChannel+"'")
	require.Contains(t, schemaSQL, "AFTER INSERT ON rsvps")
}
