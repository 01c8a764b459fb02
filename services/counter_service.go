package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// CounterType names a per-user counter.
type CounterType string

const (
	CounterTypeFriendRequests CounterType = "friend_requests"
)

const counterTTL = 24 * time.Hour

// PendingCounter caches the number of incoming pending requests per user.
// It is a view: the relations table stays the source of truth.
type PendingCounter interface {
	Adjust(ctx context.Context, userID int64, delta int64)
	Get(ctx context.Context, userID int64) (count int64, ok bool, err error)
	Set(ctx context.Context, userID int64, value int64) error
	// CachedUsers lists the users that currently have a cached value.
	CachedUsers(ctx context.Context) ([]int64, error)
}

// Adjusts only keys that were seeded; a missing key is reseeded from the
// database on the next read, so blind increments would start from a wrong base.
var adjustCounterScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return -1
	end
	local value = redis.call('INCRBY', KEYS[1], ARGV[1])
	if value < 0 then
		redis.call('SET', KEYS[1], 0)
		value = 0
	end
	redis.call('EXPIRE', KEYS[1], ARGV[2])
	return value
`)

// CounterService keeps counters in Redis under counter:<user>:<type>.
type CounterService struct {
	redisClient *redis.Client
	counterType CounterType
}

func NewCounterService(redisClient *redis.Client) *CounterService {
	return &CounterService{
		redisClient: redisClient,
		counterType: CounterTypeFriendRequests,
	}
}

func counterKey(userID int64, counterType CounterType) string {
	return fmt.Sprintf("counter:%d:%s", userID, counterType)
}

// userFromCounterKey is the inverse of counterKey.
func userFromCounterKey(key string, counterType CounterType) (int64, bool) {
	prefix, suffix := "counter:", ":"+string(counterType)
	if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, suffix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(key, prefix), suffix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Adjust is best effort: errors are logged and the key dropped so the next read reseeds it.
func (s *CounterService) Adjust(ctx context.Context, userID int64, delta int64) {
	key := counterKey(userID, s.counterType)
	ttl := int64(counterTTL / time.Second)
	if err := adjustCounterScript.Run(ctx, s.redisClient, []string{key}, delta, ttl).Err(); err != nil {
		log.Printf("Warning: failed to adjust counter %s by %d: %v", key, delta, err)
		if err := s.redisClient.Del(ctx, key).Err(); err != nil {
			log.Printf("Warning: failed to drop counter %s: %v", key, err)
		}
	}
}

func (s *CounterService) Get(ctx context.Context, userID int64) (int64, bool, error) {
	key := counterKey(userID, s.counterType)
	raw, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get counter: %w", err)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt counter %s: %w", key, err)
	}
	return value, true, nil
}

func (s *CounterService) Set(ctx context.Context, userID int64, value int64) error {
	key := counterKey(userID, s.counterType)
	return s.redisClient.Set(ctx, key, value, counterTTL).Err()
}

// CachedUsers walks the counter keyspace with SCAN, never KEYS, so a large
// keyspace does not block Redis.
func (s *CounterService) CachedUsers(ctx context.Context) ([]int64, error) {
	match := "counter:*:" + string(s.counterType)

	var (
		users  []int64
		cursor uint64
	)
	for {
		keys, next, err := s.redisClient.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan counters: %w", err)
		}
		for _, key := range keys {
			if id, ok := userFromCounterKey(key, s.counterType); ok {
				users = append(users, id)
			}
		}
		if next == 0 {
			return users, nil
		}
		cursor = next
	}
}

// NopCounter is used when Redis is not configured; every read misses.
type NopCounter struct{}

func (NopCounter) Adjust(context.Context, int64, int64) {}

func (NopCounter) Get(context.Context, int64) (int64, bool, error) {
	return 0, false, nil
}

func (NopCounter) Set(context.Context, int64, int64) error {
	return nil
}

func (NopCounter) CachedUsers(context.Context) ([]int64, error) {
	return nil, nil
}
