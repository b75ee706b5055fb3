package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamroster/employee-directory/internal/api/metrics"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

const defaultPageTTL = 10 * time.Minute

// PageCache keeps decorated roster pages in Redis.
// Key format: roster:page:<offset>:<limit>
type PageCache struct {
	client *redis.Client
}

// NewPageCache creates a PageCache wrapping the given Redis client.
func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client}
}

// GetPage reports ok=false on a miss. A cached value that no longer decodes
// is treated as a miss.
func (c *PageCache) GetPage(ctx context.Context, offset, limit int) (*ports.RosterPage, bool, error) {
	raw, err := c.client.Get(ctx, c.key(offset, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RosterCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("page cache get: %w", err)
	}

	var page ports.RosterPage
	if err := json.Unmarshal(raw, &page); err != nil {
		metrics.RosterCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	metrics.RosterCacheTotal.WithLabelValues("hit").Inc()
	return &page, true, nil
}

// PutPage stores the page for ttl (defaultPageTTL when ttl <= 0).
func (c *PageCache) PutPage(ctx context.Context, offset, limit int, page *ports.RosterPage, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultPageTTL
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("page cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(offset, limit), raw, ttl).Err()
}

func (c *PageCache) key(offset, limit int) string {
	return fmt.Sprintf("roster:page:%d:%d", offset, limit)
}
