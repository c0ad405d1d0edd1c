package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// maxUpdateAttempts bounds optimistic retries when replicas race on one key.
const maxUpdateAttempts = 32

// ErrUpdateConflict is returned when an update keeps losing to concurrent writers.
var ErrUpdateConflict = errors.New("session update conflict")

// UpdateFunc mutates a session in place. It can run more than once when a
// concurrent writer wins, so it must only touch s and values it reassigns.
type UpdateFunc func(s *Session) error

// Store keeps sessions for their idle lifetime. Load returns (nil, nil) for
// an unknown or expired session.
//
// Update is the read-modify-write used by every state transition. It loads
// the session (or the one built by create), applies fn and saves the result
// even when fn fails. The write is atomic against other Update calls on the
// same id, including calls from other processes sharing the backend. On a
// store failure the returned session is nil; otherwise fn's error is passed
// through next to the saved session.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, create func() *Session, fn UpdateFunc) (*Session, error)
}

// MemoryStore keeps sessions in process memory. Every Save restarts the TTL.
type MemoryStore struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &MemoryStore{cache: cache.New(ttl, cleanup)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	if v, ok := m.cache.Get(id); ok {
		if s, ok := v.(*Session); ok {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.cache.Set(s.ID, s, cache.DefaultExpiration)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, create func() *Session, fn UpdateFunc) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, _ := m.Load(ctx, id)
	if s == nil {
		s = create()
	}
	fnErr := fn(s)
	_ = m.Save(ctx, s)
	return s, fnErr
}

// RedisStore keeps sessions as JSON documents with a TTL so several API
// replicas can serve the same visitor. Updates run as WATCH/MULTI
// transactions and retry when another replica wrote the key first.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

const redisKeyPrefix = "roammate:session:"

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func decodeSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decodeSession(data)
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisStore) Update(ctx context.Context, id string, create func() *Session, fn UpdateFunc) (*Session, error) {
	key := redisKey(id)

	var (
		saved *Session
		fnErr error
	)
	txf := func(tx *redis.Tx) error {
		var s *Session
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			s = create()
		case err != nil:
			return fmt.Errorf("failed to load session: %w", err)
		default:
			if s, err = decodeSession(data); err != nil {
				return err
			}
		}

		fnErr = fn(s)
		encoded, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}

		// Exec fails with TxFailedErr if the key changed after WATCH.
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		saved = s
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return saved, fnErr
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return nil, fmt.Errorf("failed to update session %s: %w", id, ErrUpdateConflict)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
