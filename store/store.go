// Package store holds the durable backends a smartstore.Store writes to.
package store

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by a backend that refuses a write because it
// would grow past its storage limit.
var ErrQuotaExceeded = errors.New("store: quota exceeded")

// Backend is a durable string-to-string map that raw keys are written to.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the raw value for a key. The boolean is false if the key
	// does not exist.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the raw value, overwriting anything already there
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Available reports whether the backend can be used right now.
	// It must not have side effects.
	Available(ctx context.Context) bool
}

var (
	_ Backend = (*MemoryStore)(nil)
	_ Backend = (*RedisStore)(nil)
	_ Backend = (*DatabaseStore)(nil)
	_ Backend = (*BoltStore)(nil)
)
