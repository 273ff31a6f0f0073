package metdb

import (
	"context"
	"encoding/json"
	"os"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// MET values are static reference data; a long TTL is fine.
const cacheTTL = 24 * time.Hour

// Cache keeps resolved exercise rows in Redis so repeated log entries for the
// same movement don't hit the database. All cache errors are swallowed; a
// cold or broken cache just means a slower lookup.
type Cache struct {
	client *redis.Client
}

// NewCacheFromEnv returns nil when FITLOG_REDIS_ADDR is not set; a nil *Cache
// is valid and disables caching.
func NewCacheFromEnv() *Cache {
	addr := os.Getenv("FITLOG_REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return &Cache{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("FITLOG_REDIS_PW"),
		DB:       0,
	})}
}

func (c *Cache) get(ctx context.Context, name string) (*Exercise, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, "met:"+name).Result()
	if err != nil {
		return nil, false
	}
	var row Exercise
	if err := json.Unmarshal([]byte(payload), &row); err != nil {
		return nil, false
	}
	return &row, true
}

func (c *Cache) put(ctx context.Context, name string, row *Exercise) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(row)
	if err != nil {
		return
	}
	c.client.Set(ctx, "met:"+name, payload, cacheTTL)
}
