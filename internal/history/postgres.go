package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partsync/bomcompare/internal/bom"
)

// Querier is the subset of pgxpool.Pool the store needs; it lets tests
// inject a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// PostgresStore persists sessions as JSONB rows. Sessions are immutable,
// so there is no update path: insert once, read many.
type PostgresStore struct {
	db Querier
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a Postgres-backed history store.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the sessions table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS comparison_sessions (
			id UUID PRIMARY KEY,
			master_filename TEXT NOT NULL,
			target_count INT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return nil
}

// Save inserts the session and returns its id.
func (s *PostgresStore) Save(ctx context.Context, session *bom.ComparisonSession) (uuid.UUID, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode session: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO comparison_sessions (id, master_filename, target_count, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.Master.Filename, len(session.Targets), payload, session.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session.ID, nil
}

// Get retrieves a session by id.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*bom.ComparisonSession, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, `
		SELECT payload FROM comparison_sessions WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session bom.ComparisonSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// List returns saved sessions newest first.
func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, master_filename, target_count, created_at
		FROM comparison_sessions
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			createdAt time.Time
		)
		if err := rows.Scan(&entry.ID, &entry.MasterFilename, &entry.TargetCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		entry.CreatedAt = createdAt.Format(time.RFC3339)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session rows: %w", err)
	}
	return entries, nil
}
