// Package cache implements the cache-aside read layer. The volatile store is
// never load-bearing: an unreachable store degrades every read to a miss and
// every write to a reported failure, and callers fall back to the source of
// truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/logging"
)

// ErrCacheMiss signals an absent key inside the KV boundary.
var ErrCacheMiss = errors.New("cache miss")

// KV is the minimal key-value surface the store needs. RedisKV adapts
// go-redis to it; tests substitute in-memory fakes.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisKV adapts *redis.Client to the KV interface.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Store wraps a KV with JSON serialization and the degradation contract:
// Get answers miss on any failure, Set and Delete answer false.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Get loads key into dest. Returns false on miss, decode failure, or an
// unreachable store; in every case dest is left for the caller to fill from
// the primary store.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	value, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return false
	}
	if err != nil {
		logging.Warn("Cache read failed, treating as miss", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
		return false
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		logging.Warn("Cache entry undecodable, treating as miss", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
		return false
	}
	return true
}

// Set stores value under key with the given ttl. Returns false on failure.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	payload, err := json.Marshal(value)
	if err != nil {
		logging.Warn("Cache value not serializable", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
		return false
	}
	if err := s.kv.Set(ctx, key, string(payload), ttl); err != nil {
		logging.Warn("Cache write failed", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
		return false
	}
	return true
}

// Delete removes keys. Returns false on failure; a failed invalidation only
// widens staleness to the entry's ttl.
func (s *Store) Delete(ctx context.Context, keys ...string) bool {
	if len(keys) == 0 {
		return true
	}
	if err := s.kv.Del(ctx, keys...); err != nil {
		logging.Warn("Cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
			"keys":  keys,
		})
		return false
	}
	return true
}
