package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryCache handles Redis operations for agent memory summaries, so a
// chat turn does not need a Mongo round trip for every message.
type MemoryCache interface {
	GetSummary(ctx context.Context, uid, characterID string) (string, bool, error)
	SetSummary(ctx context.Context, uid, characterID, summary string) error
	Invalidate(ctx context.Context, uid, characterID string) error
}

type memoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(client *redis.Client) MemoryCache {
	return &memoryCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *memoryCache) key(uid, characterID string) string {
	return fmt.Sprintf("user:%s:agent:%s:memory", uid, characterID)
}

func (c *memoryCache) GetSummary(ctx context.Context, uid, characterID string) (string, bool, error) {
	data, err := c.client.Get(ctx, c.key(uid, characterID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

func (c *memoryCache) SetSummary(ctx context.Context, uid, characterID, summary string) error {
	return c.client.Set(ctx, c.key(uid, characterID), summary, c.ttl).Err()
}

func (c *memoryCache) Invalidate(ctx context.Context, uid, characterID string) error {
	return c.client.Del(ctx, c.key(uid, characterID)).Err()
}
