package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const followersCountKeyPrefix = "social:followers:"

// FollowStore caches follower counts. Reads report a hit flag so the
// caller can fall back to the database on a miss; every method is
// best-effort and never required for correctness.
type FollowStore interface {
	GetFollowersCount(ctx context.Context, userID uint) (int64, bool, error)
	SetFollowersCount(ctx context.Context, userID uint, count int64) error
	// Invalidate drops the cached count after a follow toggle so the
	// next read recomputes it from the database.
	Invalidate(ctx context.Context, userID uint) error
	Close() error
}

// RedisFollowStore implements FollowStore backed by Redis.
type RedisFollowStore struct {
	client *redis.Client
}

// NewRedisFollowStore creates a new Redis-backed follow store.
func NewRedisFollowStore(address, password string, db int) (*RedisFollowStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisFollowStore{client: client}, nil
}

func followersCountKey(userID uint) string {
	return followersCountKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// GetFollowersCount returns the cached followers count for a user.
// Returns (count, true, nil) on hit, (0, false, nil) on miss.
func (s *RedisFollowStore) GetFollowersCount(ctx context.Context, userID uint) (int64, bool, error) {
	val, err := s.client.Get(ctx, followersCountKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get followers count: %w", err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse followers count: %w", err)
	}
	return count, true, nil
}

// SetFollowersCount caches the followers count for a user.
func (s *RedisFollowStore) SetFollowersCount(ctx context.Context, userID uint, count int64) error {
	if err := s.client.Set(ctx, followersCountKey(userID), count, 0).Err(); err != nil {
		return fmt.Errorf("redis set followers count: %w", err)
	}
	return nil
}

// Invalidate drops the cached followers count for a user.
func (s *RedisFollowStore) Invalidate(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, followersCountKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis invalidate followers count: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisFollowStore) Close() error {
	return s.client.Close()
}

var _ FollowStore = (*RedisFollowStore)(nil)

// NoopFollowStore is used when Redis is not configured; every read is
// a miss, so callers always hit the database.
type NoopFollowStore struct{}

func (NoopFollowStore) GetFollowersCount(ctx context.Context, userID uint) (int64, bool, error) {
	return 0, false, nil
}

func (NoopFollowStore) SetFollowersCount(ctx context.Context, userID uint, count int64) error {
	return nil
}

func (NoopFollowStore) Invalidate(ctx context.Context, userID uint) error { return nil }

func (NoopFollowStore) Close() error { return nil }

var _ FollowStore = NoopFollowStore{}
