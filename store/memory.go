package store

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// MemoryStore keeps raw entries in process memory. It has no expiry of its
// own; entries live until they are removed or overwritten.
type MemoryStore struct {
	data      *xsync.MapOf[string, string]
	quota     int64
	used      atomic.Int64
	mu        sync.Mutex // serializes quota accounting on writes
	available atomic.Bool
}

// NewMemoryStore creates an empty store. A quota of zero or less means the
// store never refuses a write.
func NewMemoryStore(quota int64) *MemoryStore {
	ms := &MemoryStore{
		data:  xsync.NewMapOf[string, string](),
		quota: quota,
	}
	ms.available.Store(true)
	return ms
}

func (ms *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	value, ok := ms.data.Load(key)
	return value, ok, nil
}

// Set stores a value. Keys and values both count against the quota.
func (ms *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delta := int64(len(key) + len(value))
	if old, ok := ms.data.Load(key); ok {
		delta -= int64(len(key) + len(old))
	}
	if ms.quota > 0 && ms.used.Load()+delta > ms.quota {
		return ErrQuotaExceeded
	}

	ms.data.Store(key, value)
	ms.used.Add(delta)
	return nil
}

func (ms *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if old, ok := ms.data.LoadAndDelete(key); ok {
		ms.used.Add(-int64(len(key) + len(old)))
	}
	return nil
}

func (ms *MemoryStore) Available(context.Context) bool {
	return ms.available.Load()
}

// SetAvailable changes what Available reports. It exists so callers can
// simulate an environment without storage.
func (ms *MemoryStore) SetAvailable(ok bool) {
	ms.available.Store(ok)
}

// Len returns the number of stored entries
func (ms *MemoryStore) Len() int {
	return ms.data.Size()
}

// Used returns the number of bytes counted against the quota.
func (ms *MemoryStore) Used() int64 {
	return ms.used.Load()
}
