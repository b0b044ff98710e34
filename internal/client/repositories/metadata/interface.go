// Package metadata stores the client's session entries (token, user id,
// last flow route) in the local SQLite database.
package metadata

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key has no row.
var ErrNotFound = errors.New("metadata key not found")

// Entry is one stored key with the time it was last written.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type Repository interface {
	Get(ctx context.Context, key string) (Entry, error)
	// Put upserts every pair with the same timestamp.
	Put(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, keys ...string) error
	Entries(ctx context.Context) ([]Entry, error)
	Truncate(ctx context.Context) error
}
