package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	Rooms int `json:"rooms"`
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mem.now = func() time.Time { return now }

	calls := 0
	load := func(context.Context) (stats, error) {
		calls++
		return stats{Rooms: calls}, nil
	}

	v, err := GetOrLoad(ctx, mem, "stats", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Rooms)

	v, err = GetOrLoad(ctx, mem, "stats", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Rooms, "served from cache")

	now = now.Add(time.Minute)
	v, err = GetOrLoad(ctx, mem, "stats", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Rooms, "expired entry reloads")

	v, err = GetOrLoad(ctx, mem, "stats", 0, load)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Rooms, "zero ttl bypasses the cache")

	v, err = GetOrLoad[stats](ctx, nil, "stats", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Rooms)
}

func TestGetOrLoad_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	boom := errors.New("db down")

	_, err := GetOrLoad(ctx, mem, "k", time.Minute, func(context.Context) (stats, error) { return stats{}, boom })
	assert.ErrorIs(t, err, boom)

	_, ok, err := mem.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
