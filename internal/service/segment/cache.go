package segment

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const versionKey = "crm:customers:version"

// CountCache memoizes segment member counts in Redis. Entries are keyed by
// (customer-set version, rule-set hash), so any customer write — which
// bumps the version — or any rule edit — which changes the hash — makes
// every stale entry unreachable. A missing or failing Redis degrades to
// recomputation, never to wrong answers.
type CountCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCountCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CountCache {
	return &CountCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Bump advances the customer-set version. Called synchronously on every
// customer create, update, or delete.
func (c *CountCache) Bump(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.Warn("failed to bump customer-set version", zap.Error(err))
	}
}

// Version reads the current customer-set version. ok is false when the
// cache is disabled or Redis is unreachable, in which case nothing
// should be written.
func (c *CountCache) Version(ctx context.Context) (int64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *CountCache) key(version int64, rulesHash string) string {
	return fmt.Sprintf("crm:segment:count:%d:%s", version, rulesHash)
}

// Get returns a cached count for the rule set, if one exists for the
// current customer-set version.
func (c *CountCache) Get(ctx context.Context, rulesHash string) (int64, bool) {
	version, ok := c.Version(ctx)
	if !ok {
		return 0, false
	}
	n, err := c.rdb.Get(ctx, c.key(version, rulesHash)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetAt stores a computed count under the given customer-set version,
// captured before the computation began. If a customer write bumped the
// version mid-computation the entry lands under the old version, which
// no reader will ever key on, so a stale count is never served.
func (c *CountCache) SetAt(ctx context.Context, version int64, rulesHash string, count int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(version, rulesHash), count, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache segment count", zap.Error(err))
	}
}
