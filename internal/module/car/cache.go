package car

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zharkyn/carmarket/internal/domain"
)

// searchCache stores search results in Redis keyed by the serialized query
// and page parameters. Instead of tracking which cached pages a mutation
// touches, an epoch counter is folded into every key; bumping it on any
// catalog write orphans the whole cache at once and the stale entries expire
// on their own.
type searchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

const searchEpochKey = "cars:search:epoch"

func newSearchCache(rdb *redis.Client, ttl time.Duration) *searchCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &searchCache{rdb: rdb, ttl: ttl}
}

// key builds the cache key for one search page under the current epoch.
func (c *searchCache) key(ctx context.Context, queryJSON []byte, req domain.PageRequest) string {
	epoch, err := c.rdb.Get(ctx, searchEpochKey).Result()
	if err != nil {
		epoch = "0"
	}
	return fmt.Sprintf("cars:search:%s:%s:p%d:s%d:%s", epoch, queryJSON, req.Page, req.PageSize, req.Sort)
}

// get returns the cached result for the key, or nil on miss or Redis error.
func (c *searchCache) get(ctx context.Context, key string) *domain.SearchResult {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var result domain.SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

// set stores the result under the key. Errors are swallowed: the cache is an
// optimization, never a dependency.
func (c *searchCache) set(ctx context.Context, key string, result *domain.SearchResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// invalidate bumps the epoch, orphaning all cached search pages.
func (c *searchCache) invalidate(ctx context.Context) {
	InvalidateSearchCache(ctx, c.rdb)
}

// InvalidateSearchCache bumps the search cache epoch. It is exported for the
// listing module, whose approvals and rejections mutate the catalog outside
// this package.
func InvalidateSearchCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	rdb.Incr(ctx, searchEpochKey)
}
