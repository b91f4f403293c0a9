// Package db provides optional PostgreSQL persistence for session artifacts.
// The pipeline runs fine without it; when a database URL is configured, the
// ranked snapshot, shortlist, and report are mirrored there so past sessions
// stay queryable.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pipeline stages used as artifact keys.
const (
	StageRanked    = "ranked"
	StageShortlist = "shortlist"
	StageReport    = "report"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateSession records a new pipeline session and returns its ID
func (db *DB) CreateSession(ctx context.Context, keyword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO sessions (keyword, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		keyword,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// CompleteSession marks a session as done or failed
func (db *DB) CompleteSession(ctx context.Context, sessionID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE sessions SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for a session, replacing any earlier
// artifact for the same stage.
func (db *DB) SaveArtifact(ctx context.Context, sessionID uuid.UUID, stage string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO session_artifacts (session_id, stage, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, stage) DO UPDATE SET content = $3, created_at = NOW()`,
		sessionID, stage, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	return nil
}

// GetArtifact loads a session artifact; nil content means "not recorded".
func (db *DB) GetArtifact(ctx context.Context, sessionID uuid.UUID, stage string) (json.RawMessage, error) {
	var content json.RawMessage
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM session_artifacts WHERE session_id = $1 AND stage = $2`,
		sessionID, stage,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load artifact: %w", err)
	}
	return content, nil
}
