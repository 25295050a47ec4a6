package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreBasic(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore(0)

	_, ok, err := ms.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ms.Set(ctx, "k", "v1"))
	v, ok, err := ms.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	// overwrite
	require.NoError(t, ms.Set(ctx, "k", "v2"))
	v, _, _ = ms.Get(ctx, "k")
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, ms.Len())

	require.NoError(t, ms.Remove(ctx, "k"))
	_, ok, _ = ms.Get(ctx, "k")
	assert.False(t, ok)

	// removing again is not an error
	assert.NoError(t, ms.Remove(ctx, "k"))
}

func TestMemoryStoreQuota(t *testing.T) {
	tests := []struct {
		name    string
		quota   int64
		writes  [][2]string
		wantErr bool
	}{
		{
			name:   "unlimited",
			quota:  0,
			writes: [][2]string{{"a", "0123456789"}, {"b", "0123456789"}},
		},
		{
			name:   "fits exactly",
			quota:  4,
			writes: [][2]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:    "exceeded",
			quota:   3,
			writes:  [][2]string{{"a", "b"}, {"c", "d"}},
			wantErr: true,
		},
		{
			name:   "overwrite reuses space",
			quota:  2,
			writes: [][2]string{{"a", "b"}, {"a", "c"}, {"a", "d"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ms := NewMemoryStore(tt.quota)
			var err error
			for _, w := range tt.writes {
				if err = ms.Set(ctx, w[0], w[1]); err != nil {
					break
				}
			}
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrQuotaExceeded), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemoryStoreQuotaFreedOnRemove(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore(2)

	require.NoError(t, ms.Set(ctx, "a", "b"))
	require.ErrorIs(t, ms.Set(ctx, "c", "d"), ErrQuotaExceeded)

	// a refused write must leave the store unchanged
	_, ok, _ := ms.Get(ctx, "c")
	assert.False(t, ok)
	assert.Equal(t, int64(2), ms.Used())

	require.NoError(t, ms.Remove(ctx, "a"))
	assert.Equal(t, int64(0), ms.Used())
	assert.NoError(t, ms.Set(ctx, "c", "d"))
}

func TestMemoryStoreAvailable(t *testing.T) {
	ms := NewMemoryStore(0)
	assert.True(t, ms.Available(context.Background()))

	ms.SetAvailable(false)
	assert.False(t, ms.Available(context.Background()))
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ms := NewMemoryStore(0)

	assert.ErrorIs(t, ms.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := ms.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, ms.Remove(ctx, "k"), context.Canceled)
	assert.Equal(t, 0, ms.Len())
}

func TestMemoryStoreConcurrency(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore(0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = ms.Set(ctx, "shared", "value")
				_, _, _ = ms.Get(ctx, "shared")
			}
		}(i)
	}
	wg.Wait()

	v, ok, err := ms.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", v)
	assert.Equal(t, int64(len("shared")+len("value")), ms.Used())
}
