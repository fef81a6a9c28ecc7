// Package history persists comparison sessions. The comparison engine
// never reads or mutates stored history itself; it hands a finished
// session to a Store and forgets about it.
package history

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/partsync/bomcompare/internal/bom"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("comparison session not found")

// Store saves and retrieves immutable comparison sessions.
type Store interface {
	// Save persists a finished session and returns its id.
	Save(ctx context.Context, session *bom.ComparisonSession) (uuid.UUID, error)
	// Get retrieves a previously saved session.
	Get(ctx context.Context, id uuid.UUID) (*bom.ComparisonSession, error)
	// List returns saved session ids with creation times, newest first.
	List(ctx context.Context) ([]Entry, error)
}

// Entry is one history listing row.
type Entry struct {
	ID             uuid.UUID `json:"id"`
	MasterFilename string    `json:"master_filename"`
	TargetCount    int       `json:"target_count"`
	CreatedAt      string    `json:"created_at"`
}
