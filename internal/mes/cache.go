package mes

import (
	"context"
	"encoding/json"
)

const cachePrefix = "shopfloor:mes:"

func (c *httpClient) cacheEnabled() bool {
	return c.redis != nil && c.cfg.CacheTTL > 0
}

func (c *httpClient) readCache(ctx context.Context, key string, out any) bool {
	if !c.cacheEnabled() {
		return false
	}
	val, err := c.redis.Get(ctx, cachePrefix+key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *httpClient) writeCache(ctx context.Context, key string, val any) {
	if !c.cacheEnabled() {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, cachePrefix+key, data, c.cfg.CacheTTL).Err()
}
