// Package cache memoizes source lookups in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/provider"
)

const keyPrefix = "lingo:lookup:"

// Client is the subset of redis.Cmdable the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Adapter wraps another adapter. Only non-empty results are stored, so a
// source that was down is asked again on the next lookup. Redis failures are
// logged and the wrapped adapter is used directly.
type Adapter struct {
	next   provider.Adapter
	client Client
	ttl    time.Duration
	log    *slog.Logger
}

// Wrap decorates next with a cache.
func Wrap(next provider.Adapter, client Client, ttl time.Duration, logger *slog.Logger) *Adapter {
	return &Adapter{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    logger.With("adapter", "cache", "source", next.Name()),
	}
}

// WrapAll decorates every adapter.
func WrapAll(adapters []provider.Adapter, client Client, ttl time.Duration, logger *slog.Logger) []provider.Adapter {
	out := make([]provider.Adapter, len(adapters))
	for i, a := range adapters {
		out[i] = Wrap(a, client, ttl, logger)
	}
	return out
}

// Name implements provider.Adapter.
func (a *Adapter) Name() string { return a.next.Name() }

// Lookup implements provider.Adapter.
func (a *Adapter) Lookup(ctx context.Context, headword string) []domain.CandidateEntry {
	key := Key(a.next.Name(), headword)

	raw, err := a.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []domain.CandidateEntry
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil && len(cached) > 0 {
			a.log.DebugContext(ctx, "cache hit", slog.String("key", key))
			return cached
		}
		a.log.WarnContext(ctx, "cache entry unreadable", slog.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		a.log.WarnContext(ctx, "cache get failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	out := a.next.Lookup(ctx, headword)
	if len(out) == 0 {
		return out
	}

	data, err := json.Marshal(out)
	if err != nil {
		return out
	}
	if err := a.client.Set(ctx, key, data, a.ttl).Err(); err != nil {
		a.log.WarnContext(ctx, "cache set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return out
}

// Key builds the cache key for a source and headword.
func Key(source, headword string) string {
	return keyPrefix + provider.NormalizeName(source) + ":" + strings.ToLower(strings.TrimSpace(headword))
}
