package checkoutlog

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Latest when no entry exists for the checkout ID.
var ErrNotFound = errors.New("checkout not found")

// Repository is the port for persisting checkout log entries.
// The orchestrator depends on this abstraction, not on SQLite directly,
// so the implementation can be swapped for Postgres or an in-memory fake.
type Repository interface {
	// Save appends a new entry. The log is append-only, never an upsert.
	Save(ctx context.Context, entry *Entry) error

	// Latest returns the most recent entry for a checkout run, or ErrNotFound
	// when the run never wrote an entry.
	Latest(ctx context.Context, checkoutID string) (*Entry, error)
}
