package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"core/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// TurnLogger records processed turns. It is write-only: nothing is read
// back into session memory.
type TurnLogger interface {
	LogTurn(ctx context.Context, rec *model.TurnRecord) error
}

// NopTurnLogger discards turn records
type NopTurnLogger struct{}

// LogTurn does nothing
func (NopTurnLogger) LogTurn(context.Context, *model.TurnRecord) error { return nil }

// Schema creates the turn audit table
const Schema = `
CREATE TABLE IF NOT EXISTS conversation_turns (
	id               BIGSERIAL PRIMARY KEY,
	session_id       UUID        NOT NULL,
	message          TEXT        NOT NULL,
	enriched_query   TEXT        NOT NULL,
	intent           TEXT        NOT NULL,
	analysis         TEXT        NOT NULL,
	metric           TEXT        NOT NULL,
	areas            TEXT[]      NOT NULL DEFAULT '{}',
	backend_areas    JSONB,
	memory_version   INTEGER     NOT NULL,
	failed           BOOLEAN     NOT NULL DEFAULT FALSE,
	response_time_ms INTEGER     NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_conversation_turns_session ON conversation_turns (session_id, created_at);
`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if !strings.Contains(dsn, "?") {
			dsn += "?prefer_simple_protocol=true"
		} else {
			dsn += "&prefer_simple_protocol=true"
		}
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute) // Shorter lifetime to avoid stale connections
	db.SetConnMaxIdleTime(2 * time.Minute) // Close idle connections sooner

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// EnsureSchema creates the audit table when it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LogTurn inserts one turn record
func (r *PostgresRepository) LogTurn(ctx context.Context, rec *model.TurnRecord) error {
	query := `
		INSERT INTO conversation_turns
			(session_id, message, enriched_query, intent, analysis, metric, areas, backend_areas, memory_version, failed, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	areas := rec.Areas
	if areas == nil {
		areas = []string{}
	}

	row := r.db.QueryRowxContext(ctx, query,
		rec.SessionID,
		rec.Message,
		rec.EnrichedQuery,
		string(rec.Intent),
		string(rec.Analysis),
		string(rec.Metric),
		pq.Array(areas),
		rec.BackendAreas,
		rec.MemoryVersion,
		rec.Failed,
		rec.ResponseTimeMs,
	)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("failed to log turn: %w", err)
	}
	return nil
}

var _ TurnLogger = (*PostgresRepository)(nil)
