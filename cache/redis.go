package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"food-storefront/models"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 7 * 24 * time.Hour
)

// RedisCache stores cart snapshots as a redis hash per customer, field per
// dish, with a 7-day expiry. Layout matches the backend cart service so a
// shared instance remains readable by both sides.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache returns a cache backed by the redis instance at addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *RedisCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", cartKeyPrefix, userID)
}

func (c *RedisCache) Load(ctx context.Context, userID uint) (models.CartSession, error) {
	entries, err := c.client.HGetAll(ctx, c.key(userID)).Result()
	if err != nil {
		return models.CartSession{}, err
	}

	var session models.CartSession
	for _, raw := range entries {
		var item models.CartLineItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return models.CartSession{}, fmt.Errorf("decode cached cart item: %w", err)
		}
		session.Items = append(session.Items, item)
	}
	// Hash fields come back unordered; Position restores insertion order.
	sort.Slice(session.Items, func(i, j int) bool {
		return session.Items[i].Position < session.Items[j].Position
	})
	if len(session.Items) > 0 {
		session.RestaurantID = session.Items[0].RestaurantID
	}
	return session, nil
}

func (c *RedisCache) Save(ctx context.Context, userID uint, session models.CartSession) error {
	key := c.key(userID)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(session.Items) > 0 {
		fields := make(map[string]interface{}, len(session.Items))
		for i, it := range session.Items {
			it.OwnerID = userID
			it.Position = i
			raw, err := json.Marshal(it)
			if err != nil {
				return fmt.Errorf("encode cart item: %w", err)
			}
			fields[fmt.Sprintf("%d", it.DishID)] = raw
		}
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, cartTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) Clear(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
