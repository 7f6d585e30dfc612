package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/agrifeed/pkg/logger"
)

const feedCacheKey = "feed:global"

// FeedCache caches the anonymous rendering of the global feed. Viewer-specific
// reads (isLiked annotations) always bypass it, so a hit never leaks another
// user's like state. A nil client disables caching entirely.
type FeedCache struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewFeedCache(cache *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{cache: cache, ttl: ttl}
}

func (f *FeedCache) enabled() bool { return f != nil && f.cache != nil && f.ttl > 0 }

func (f *FeedCache) Get(ctx context.Context) ([]PostView, bool) {
	if !f.enabled() {
		return nil, false
	}
	data, err := f.cache.Get(ctx, feedCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var out []PostView
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (f *FeedCache) Set(ctx context.Context, views []PostView) {
	if !f.enabled() {
		return
	}
	payload, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := f.cache.Set(ctx, feedCacheKey, payload, f.ttl).Err(); err != nil {
		logger.Warn("feed cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached feed after any mutation that changes what the
// feed shows (post create/delete, comment add/delete, like toggle).
func (f *FeedCache) Invalidate(ctx context.Context) {
	if !f.enabled() {
		return
	}
	if err := f.cache.Del(ctx, feedCacheKey).Err(); err != nil {
		logger.Warn("feed cache invalidate failed", zap.Error(err))
	}
}
