package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hongminglow/platform-accounts/internal/models"
	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "accounts:platforms:"

// Connect opens a Redis client and verifies it answers a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// PlatformCache keeps platform profiles in Redis keyed by user id.
type PlatformCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlatformCache wraps client; entries expire after ttl.
func NewPlatformCache(client *redis.Client, ttl time.Duration) *PlatformCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PlatformCache{client: client, ttl: ttl}
}

// Get returns the cached profile and whether it was present.
func (c *PlatformCache) Get(ctx context.Context, userID int64) (models.PlatformProfile, bool, error) {
	raw, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.PlatformProfile{}, false, nil
		}
		return models.PlatformProfile{}, false, err
	}
	var profile models.PlatformProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return models.PlatformProfile{}, false, fmt.Errorf("decode cached profile: %w", err)
	}
	return profile, true, nil
}

// Set stores profile for userID.
func (c *PlatformCache) Set(ctx context.Context, userID int64, profile models.PlatformProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(userID), raw, c.ttl).Err()
}

// Invalidate drops any cached profile for userID.
func (c *PlatformCache) Invalidate(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, key(userID)).Err()
}

// Close releases the underlying client.
func (c *PlatformCache) Close() error {
	return c.client.Close()
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}
