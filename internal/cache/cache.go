package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin optional Redis wrapper for the public catalog. A nil
// Cache (or one built with empty addr) degrades to a no-op so the service
// runs without Redis configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
		_ = client.Close()
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// GetJSON loads and unmarshals a cached value; ok is false on miss or any
// cache failure, which callers treat as "fetch from the database".
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// SetJSON stores a value best-effort; failures are logged, never returned.
func (c *Cache) SetJSON(ctx context.Context, key string, val any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
}

// Invalidate drops keys after catalog writes.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidate failed: %v", err)
	}
}

func (c *Cache) Close() {
	if c != nil {
		_ = c.client.Close()
	}
}
