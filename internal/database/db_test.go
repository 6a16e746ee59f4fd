package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallhq/recall/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
	}{
		{
			name: "creates connection with valid config",
			cfg: config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "testdb",
				Username: "testuser",
				Password: "testpass",
			},
		},
		{
			name: "creates connection with custom port",
			cfg: config.DatabaseConfig{
				Host:     "db.example.com",
				Port:     3307,
				Database: "recall",
				Username: "admin",
				Password: "secret",
			},
		},
		{
			name: "creates connection with pool settings",
			cfg: config.DatabaseConfig{
				Host:            "localhost",
				Port:            3306,
				Database:        "testdb",
				Username:        "testuser",
				Password:        "testpass",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, "mysql", got.DriverName())
			if tt.cfg.MaxOpenConns > 0 {
				assert.Equal(t, tt.cfg.MaxOpenConns, got.Stats().MaxOpenConnections)
			}
		})
	}
}

func TestRunInTx(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx *sqlx.Tx) error
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   string
	}{
		{
			name: "commits on success",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				_, err := tx.ExecContext(ctx, "UPDATE review_schedules SET is_active = FALSE")
				return err
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE review_schedules").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("boom")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			wantErr: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			sqlxDB := sqlx.NewDb(db, "mysql")
			err = RunInTx(context.Background(), sqlxDB, tt.fn)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBuildMultiRowInsert(t *testing.T) {
	got := BuildMultiRowInsert("review_history", []string{"learner_id", "content_id", "result"}, 2)
	assert.Equal(t,
		"INSERT INTO review_history (learner_id, content_id, result) VALUES (?, ?, ?), (?, ?, ?)",
		got,
	)
}
