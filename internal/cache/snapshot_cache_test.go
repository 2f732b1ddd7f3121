package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gigmatrix/internal/snapshot"
)

func testCache(t *testing.T, now *time.Time, ttl time.Duration) (*SnapshotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewSnapshotCache(client, ttl, func() time.Time { return *now }, zap.NewNop())
	return c, mr
}

var cacheWindow = struct{ from, to time.Time }{
	from: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	to:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
}

func sampleBundle(fetchedAt time.Time) *snapshot.Bundle {
	return &snapshot.Bundle{
		Year: 2026, From: cacheWindow.from, To: cacheWindow.to, FetchedAt: fetchedAt,
		Matrix: &snapshot.MatrixSnapshot{Year: 2026, Days: []snapshot.MatrixDay{
			{Date: time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC), Row: 2, Pending: "BOOKED"},
		}},
	}
}

func TestSnapshotCache_PutGetRoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 21, 10, 15, 0, 0, time.UTC)
	c, _ := testCache(t, &now, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, sampleBundle(now)))

	got, err := c.Get(ctx, 2026, cacheWindow.from, cacheWindow.to)
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year)
	require.NotNil(t, got.Matrix)
	require.Len(t, got.Matrix.Days, 1)
	assert.Equal(t, "BOOKED", got.Matrix.Days[0].Pending)
}

func TestSnapshotCache_MissWhenEmpty(t *testing.T) {
	now := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	c, _ := testCache(t, &now, time.Hour)

	_, err := c.Get(context.Background(), 2026, cacheWindow.from, cacheWindow.to)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSnapshotCache_HourRollInvalidates(t *testing.T) {
	now := time.Date(2026, 2, 21, 10, 59, 0, 0, time.UTC)
	c, _ := testCache(t, &now, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, sampleBundle(now)))
	_, err := c.Get(ctx, 2026, cacheWindow.from, cacheWindow.to)
	require.NoError(t, err)

	// 过整点后键轮换，同一条目不再命中
	now = time.Date(2026, 2, 21, 11, 1, 0, 0, time.UTC)
	_, err = c.Get(ctx, 2026, cacheWindow.from, cacheWindow.to)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSnapshotCache_TTLBoundsEntry(t *testing.T) {
	now := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	c, mr := testCache(t, &now, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, sampleBundle(now)))

	mr.FastForward(31 * time.Minute)
	_, err := c.Get(ctx, 2026, cacheWindow.from, cacheWindow.to)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSnapshotCache_CorruptEntryIsMiss(t *testing.T) {
	now := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	c, mr := testCache(t, &now, time.Hour)

	key := c.key(2026, cacheWindow.from, cacheWindow.to)
	require.NoError(t, mr.Set(key, "{not json"))

	_, err := c.Get(context.Background(), 2026, cacheWindow.from, cacheWindow.to)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSnapshotCache_Age(t *testing.T) {
	now := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	c, _ := testCache(t, &now, time.Hour)

	bundle := sampleBundle(now)
	assert.Equal(t, "fresh", c.Age(bundle))

	now = now.Add(12 * time.Minute)
	assert.Equal(t, "cached 12 min ago", c.Age(bundle))
}
