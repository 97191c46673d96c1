package cache

import (
	"context"
	"testing"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "a", "1", 0))
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	require.NoError(t, store.Delete(ctx, "a", "unknown"))
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryKVStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryKVStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))

	now = now.Add(30 * time.Second)
	_, err := store.Get(ctx, "k")
	assert.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSummaryKeys(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	assert.Equal(t, "sleepjournal:summary:11111111-1111-1111-1111-111111111111:0:week",
		SummaryKey(id, InitialGeneration, analytics.PeriodWeek))
	assert.Equal(t, "sleepjournal:summary:11111111-1111-1111-1111-111111111111:gen", GenerationKey(id))

	keys := SummaryKeys(id, "g2")
	assert.Len(t, keys, 5)
	assert.Contains(t, keys, SummaryKey(id, "g2", analytics.PeriodAll))
	assert.NotContains(t, keys, SummaryKey(id, InitialGeneration, analytics.PeriodAll))
}

func TestOpen_WithoutURLUsesMemory(t *testing.T) {
	store, closeFn, err := Open(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.IsType(t, &MemoryKVStore{}, store)
}

func TestOpen_InvalidURL(t *testing.T) {
	_, _, err := Open(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}
