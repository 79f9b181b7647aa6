package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"petskub/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingStore records how often the backing store is hit.
type countingStore struct {
	article *model.ArticleSummary
	err     error
	calls   int
}

func (c *countingStore) GetPublished(_ context.Context, _ string) (*model.ArticleSummary, error) {
	c.calls++
	return c.article, c.err
}

func TestCachedStore_CachesHits(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	backing := &countingStore{article: &model.ArticleSummary{ID: "a1", Title: "Grooming", Published: true}}
	st, err := NewCachedStore(backing, mr.Addr(), 5*time.Minute, zap.NewNop())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		got, err := st.GetPublished(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "Grooming", got.Title)
	}
	assert.Equal(t, 1, backing.calls, "only the first lookup should reach the backing store")

	// Verify the entry and its TTL directly in Redis
	val, err := mr.Get("share:article:a1")
	require.NoError(t, err)
	var cached model.ArticleSummary
	require.NoError(t, json.Unmarshal([]byte(val), &cached))
	assert.Equal(t, "Grooming", cached.Title)
	assert.Equal(t, 5*time.Minute, mr.TTL("share:article:a1"))

	mr.FastForward(6 * time.Minute)
	_, err = st.GetPublished(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.calls, "expired entries are refetched")
}

func TestCachedStore_DoesNotCacheMisses(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	backing := &countingStore{err: ErrNotFound}
	st, err := NewCachedStore(backing, mr.Addr(), time.Minute, zap.NewNop())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.GetPublished(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.GetPublished(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 2, backing.calls)
	assert.False(t, mr.Exists("share:article:gone"))
}

func TestCachedStore_RedisDownFallsThrough(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	backing := &countingStore{article: &model.ArticleSummary{ID: "a1", Title: "Vaccines", Published: true}}
	st := &CachedStore{
		next:   backing,
		rdb:    redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}),
		ttl:    time.Minute,
		logger: zap.NewNop(),
	}
	defer st.Close()

	// Kill Redis after the client is built
	mr.Close()

	got, err := st.GetPublished(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Vaccines", got.Title)
	assert.Equal(t, 1, backing.calls)
}

func TestCachedStore_PropagatesBackingErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	boom := errors.New("boom")
	st, err := NewCachedStore(&countingStore{err: boom}, mr.Addr(), time.Minute, zap.NewNop())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.GetPublished(context.Background(), "a1")
	assert.ErrorIs(t, err, boom)
}

func TestNewCachedStore_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewCachedStore(&countingStore{}, addr, time.Minute, zap.NewNop())
	assert.Error(t, err)
}

func TestCachedStore_UnpublishedServedOnlyUntilExpiry(t *testing.T) {
	mr := miniredis.RunT(t)

	backing := &countingStore{article: &model.ArticleSummary{ID: "a1", Title: "Deworming", Published: true}}
	st, err := NewCachedStore(backing, mr.Addr(), 2*time.Minute, zap.NewNop())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	_, err = st.GetPublished(ctx, "a1")
	require.NoError(t, err)

	// Unpublished upstream after it was cached.
	backing.article, backing.err = nil, ErrNotFound

	got, err := st.GetPublished(ctx, "a1")
	require.NoError(t, err, "still cached within the TTL")
	assert.Equal(t, "Deworming", got.Title)

	mr.FastForward(2*time.Minute + time.Second)
	_, err = st.GetPublished(ctx, "a1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists("share:article:a1"))
}

func TestCachedStore_IgnoresUnpublishedEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("share:article:a1", `{"id":"a1","title":"Draft","published":false}`))

	backing := &countingStore{err: ErrNotFound}
	st, err := NewCachedStore(backing, mr.Addr(), time.Minute, zap.NewNop())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.GetPublished(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, backing.calls)
	assert.False(t, mr.Exists("share:article:a1"))
}
