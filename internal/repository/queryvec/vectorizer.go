package queryvec

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/db"
	"github.com/gtmhub/searchd/internal/domain"
)

var cacheKeyPrefix = "searchd:qvec:"

// store is the consumer interface for the embedding cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Vectorizer turns a query string into an embedding vector, memoized in a
// key-value store. It is strictly best-effort: cache failures, provider
// failures and an absent provider all degrade to a nil vector, which callers
// read as "do keyword-only scoring".
type Vectorizer struct {
	inner      domain.Embedder
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching vectorizer. inner may be nil (embedding disabled);
// s may be nil (caching disabled). cacheTotal is a counter vec with label
// "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Embedder,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Vectorizer {
	return &Vectorizer{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Vector returns the embedding for a query, or nil. Cache hits skip the
// network call; the provider is always called with the raw query text while
// the cache key uses the normalized form.
func (v *Vectorizer) Vector(ctx context.Context, query string) []float32 {
	if v.inner == nil {
		return nil
	}

	key := v.cacheKey(query)

	if v.store != nil {
		if vec, ok := v.getFromCache(ctx, key); ok {
			v.incCache("hit")
			return vec
		}
		v.incCache("miss")
	}

	result, err := v.inner.Embed(ctx, query)
	if err != nil {
		v.logger.Warn("Query embedding failed, degrading to keyword-only", zap.Error(err))
		return nil
	}
	if len(result.Embedding) == 0 {
		return nil
	}

	if v.store != nil {
		v.putToCache(ctx, key, result.Embedding)
	}
	return result.Embedding
}

func (v *Vectorizer) incCache(result string) {
	if v.cacheTotal != nil {
		v.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the normalized (lowercased, trimmed) query text.
func (v *Vectorizer) cacheKey(query string) string {
	norm := strings.ToLower(strings.TrimSpace(query))
	h := sha256.Sum256([]byte(norm))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (v *Vectorizer) getFromCache(ctx context.Context, key string) ([]float32, bool) {
	data, err := v.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			v.logger.Warn("Failed to get cached embedding", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	vec, err := bytesToVector(data)
	if err != nil {
		v.logger.Warn("Failed to parse cached embedding", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return vec, true
}

func (v *Vectorizer) putToCache(ctx context.Context, key string, vec []float32) {
	data := vectorToCacheBytes(vec)
	if err := v.store.SetWithTTL(ctx, key, data, v.ttl); err != nil {
		v.logger.Warn("Failed to cache embedding", zap.String("key", key), zap.Error(err))
	}
}

func vectorToCacheBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding cache data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
