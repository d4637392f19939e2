package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkhaliddev/foodrush/internal/logging"
	"github.com/mkhaliddev/foodrush/internal/models"
)

const catalogKey = "foods:catalog"

// FoodCache is a read-through cache for the public food catalog. Only the
// catalog read path is cached, order lifecycle state always comes from the
// store.
type FoodCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewFoodCache returns nil when no address is configured; all methods are
// nil-safe and degrade to cache misses.
func NewFoodCache(addr string, ttl time.Duration) *FoodCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &FoodCache{Client: client, TTL: ttl}
}

func (c *FoodCache) GetCatalog(ctx context.Context) ([]models.FoodItem, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.Client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.FromContext(ctx).Warn("catalog cache read failed", "error", err)
		}
		return nil, false
	}
	var items []models.FoodItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *FoodCache) SetCatalog(ctx context.Context, items []models.FoodItem) {
	if c == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, catalogKey, data, c.TTL).Err(); err != nil {
		logging.FromContext(ctx).Warn("catalog cache write failed", "error", err)
	}
}

// Invalidate drops the cached catalog after any food mutation.
func (c *FoodCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.Client.Del(ctx, catalogKey).Err(); err != nil {
		logging.FromContext(ctx).Warn("catalog cache invalidation failed", "error", err)
	}
}

func (c *FoodCache) Close() error {
	if c == nil {
		return nil
	}
	return c.Client.Close()
}
