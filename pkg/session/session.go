// Package session provides storage for editor sessions.
//
// A session holds one user's in-progress graph edits for one trip: the
// day graphs, the active day, and the undo/redo history. Sessions are
// ephemeral by design - they expire after a TTL and are discarded whenever
// the underlying trip data reloads. Nothing here is durable edit history.
//
// Two backends are provided:
//   - memory: single-process serving and tests
//   - redis: multi-instance serving, sharing sessions across replicas
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wayfare/wayfare/pkg/editor"
	"github.com/wayfare/wayfare/pkg/itinerary"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session not found")
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 4 * time.Hour

// Session stores one editor session.
type Session struct {
	ID        string         `json:"id"`
	Trip      itinerary.Trip `json:"trip"`
	Editor    editor.State   `json:"editor"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// IsExpired reports whether the session has exceeded its TTL.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session's expiry by the given TTL from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}

// New creates a session wrapping the given trip and editor state.
func New(trip itinerary.Trip, state editor.State, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Trip:      trip,
		Editor:    state,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session until its expiry.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op where the backend
	// expires keys itself).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
