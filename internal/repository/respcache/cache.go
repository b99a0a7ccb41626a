package respcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/db"
	"github.com/gtmhub/searchd/internal/domain"
)

var cacheKeyPrefix = "searchd:resp:"

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache holds full search responses under a short TTL. Like the embedding
// cache it is best-effort only: every failure reads as a miss. There is no
// locking or compare-and-swap, so concurrent misses for the same query each
// run the full pipeline (accepted cache-stampede behavior).
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a response cache over a key-value store.
// cacheTotal is a counter vec with label "result" ("hit"/"miss").
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{store: s, ttl: ttl, cacheTotal: cacheTotal, logger: logger}
}

// Key derives the cache key from the exact query text, the filters as JSON
// and the mode. Two requests share a cached response only when all three
// match byte for byte.
func Key(query string, filters domain.Filters, mode string) string {
	fj, _ := json.Marshal(filters)
	h := sha256.Sum256([]byte(query + "|" + string(fj) + "|" + mode))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

// Get returns a cached response for (query, filters, mode), or nil on miss
// or any cache failure.
func (c *Cache) Get(ctx context.Context, query string, filters domain.Filters, mode string) *domain.SearchResponse {
	key := Key(query, filters, mode)
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Response cache get failed", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return nil
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("Failed to decode cached response", zap.String("key", key), zap.Error(err))
		c.incCache("miss")
		return nil
	}

	c.incCache("hit")
	return &resp
}

// Put stores a response under the cache TTL, best effort.
func (c *Cache) Put(ctx context.Context, query string, filters domain.Filters, mode string, resp *domain.SearchResponse) {
	key := Key(query, filters, mode)
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Response cache put failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
