package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"usersvc/internal/model"
)

const userTTL = 5 * time.Minute

// UserCache keeps recently fetched users in Redis. It fails safe: any redis
// problem behaves like a miss, so reads degrade to the repository when redis
// is unavailable.
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a redis-backed user cache.
func NewUserCache(addr, password string, db int) *UserCache {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &UserCache{client: redis.NewClient(opts)}
}

func userKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Get returns the cached user, or nil on a miss. A corrupt entry is a miss.
func (c *UserCache) Get(ctx context.Context, id uint) *model.User {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors are both misses
		return nil
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// Put stores the user for a short TTL, ignoring redis errors.
func (c *UserCache) Put(ctx context.Context, user *model.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, userKey(user.ID), payload, userTTL).Err()
}

// Invalidate drops the cached entry for id, ignoring redis errors.
func (c *UserCache) Invalidate(ctx context.Context, id uint) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, userKey(id)).Err()
}
