//go:build integration

package session

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

var testRedisAddr string

func TestMain(m *testing.M) {
	if err := godotenv.Load("../../../.env.test"); err != nil {
		log.Println("Warning: .env.test file not found for session integration tests.")
	}

	testRedisAddr = os.Getenv("TEST_REDIS_ADDR")
	if testRedisAddr == "" {
		log.Fatal("TEST_REDIS_ADDR environment variable is not set for session integration tests")
	}

	os.Exit(m.Run())
}

func newIntegrationRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return NewRedisStore(client, time.Minute)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationRedisStore(t)
	id := "integration-roundtrip"
	t.Cleanup(func() { _ = store.Delete(ctx, id) })

	saved := newSession(id, time.Now().UTC())
	saved.View = types.ViewExplore
	saved.Chat = append(saved.Chat, types.ChatMessage{Role: types.RoleUser, Text: "Hi", Timestamp: time.Now().UTC()})
	saved.PendingChat = 4
	saved.PendingChatSince = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, types.ViewExplore, loaded.View)
	require.Len(t, loaded.Chat, 1)
	assert.Equal(t, "Hi", loaded.Chat[0].Text)
	assert.Equal(t, uint64(4), loaded.PendingChat)
	assert.True(t, saved.PendingChatSince.Equal(loaded.PendingChatSince))

	ttl, err := store.client.TTL(ctx, redisKey(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, id))
	loaded, err = store.Load(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_ConcurrentUpdatesFromTwoReplicas(t *testing.T) {
	ctx := context.Background()
	replicas := []*RedisStore{newIntegrationRedisStore(t), newIntegrationRedisStore(t)}
	id := "integration-concurrent"
	require.NoError(t, replicas[0].Delete(ctx, id))
	t.Cleanup(func() { _ = replicas[0].Delete(ctx, id) })

	const workers, updatesPerWorker = 4, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(store *RedisStore) {
			defer wg.Done()
			for i := 0; i < updatesPerWorker; i++ {
				_, err := store.Update(ctx, id,
					func() *Session { return newSession(id, time.Now()) },
					func(s *Session) error {
						s.issueToken()
						return nil
					})
				assert.NoError(t, err)
			}
		}(replicas[w%len(replicas)])
	}
	wg.Wait()

	s, err := replicas[1].Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, uint64(workers*updatesPerWorker), s.NextToken)
}

func TestManager_RedisReplicasShareSession(t *testing.T) {
	ctx := context.Background()
	id := "integration-manager"
	a := NewManager(newIntegrationRedisStore(t), &TestPlanner{}, newTestLogger())
	bStore := newIntegrationRedisStore(t)
	b := NewManager(bStore, &TestPlanner{}, newTestLogger())
	require.NoError(t, bStore.Delete(ctx, id))
	t.Cleanup(func() { _ = bStore.Delete(ctx, id) })

	_, err := a.Submit(ctx, id, kyotoPrefs())
	require.NoError(t, err)

	snap, err := b.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.ViewItinerary, snap.View)
	require.NotNil(t, snap.Itinerary)
	assert.Equal(t, "Kyoto", snap.Itinerary.Destination)
}
