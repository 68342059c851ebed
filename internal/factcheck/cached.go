package factcheck

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ppiankov/clipverity/internal/cache"
	"github.com/ppiankov/clipverity/internal/model"
)

// CachedChecker serves repeated claims from cache.
// Only successful records are stored; failures always reach the provider again.
type CachedChecker struct {
	next  Checker
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedChecker wraps next with a cache
func NewCachedChecker(next Checker, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedChecker{next: next, cache: c, ttl: ttl, log: logger}
}

// Check returns a cached record for claim or delegates to the wrapped checker
func (c *CachedChecker) Check(ctx context.Context, claim string) (*model.FactCheckRecord, error) {
	key := cache.ClaimKey(claim)

	if data, found := c.cache.Get(key); found {
		var record model.FactCheckRecord
		if err := json.Unmarshal(data, &record); err == nil {
			return &record, nil
		}
		_ = c.cache.Delete(key)
	}

	record, err := c.next.Check(ctx, claim)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(record)
	if err == nil {
		err = c.cache.Set(key, data, c.ttl)
	}
	if err != nil {
		c.log.Warn("fact-check cache write failed", slog.Any("error", err))
	}

	return record, nil
}
