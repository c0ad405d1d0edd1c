package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	s, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, s)

	saved := newSession("abc", time.Now())
	saved.View = types.ViewExplore
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, types.ViewExplore, loaded.View)

	require.NoError(t, store.Delete(ctx, "abc"))
	loaded, err = store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, time.Hour)

	_, err := store.Load(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load session")

	err = store.Save(context.Background(), newSession("abc", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save session")

	s, err := store.Update(context.Background(), "abc",
		func() *Session { return newSession("abc", time.Now()) },
		func(*Session) error { return nil })
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "failed to update session")
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	create := func() *Session { return newSession("abc", time.Now()) }

	s, err := store.Update(ctx, "abc", create, func(s *Session) error {
		s.View = types.ViewExplore
		return types.ErrNoItinerary
	})
	require.ErrorIs(t, err, types.ErrNoItinerary)
	require.NotNil(t, s)

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, types.ViewExplore, loaded.View)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "roammate:session:abc", redisKey("abc"))
}
