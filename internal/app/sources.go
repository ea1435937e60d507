package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/lingo-backend/internal/adapter/llm/anthropic"
	"github.com/heartmarshall/lingo-backend/internal/adapter/llm/gemini"
	"github.com/heartmarshall/lingo-backend/internal/adapter/provider/cache"
	"github.com/heartmarshall/lingo-backend/internal/adapter/provider/cambridge"
	"github.com/heartmarshall/lingo-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/lingo-backend/internal/adapter/provider/stub"
	"github.com/heartmarshall/lingo-backend/internal/adapter/provider/webster"
	"github.com/heartmarshall/lingo-backend/internal/config"
	"github.com/heartmarshall/lingo-backend/internal/provider"
)

// NewRedis connects to the lookup cache, or returns nil when it is disabled.
// An unreachable cache is logged and disabled rather than failing startup.
func NewRedis(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("lookup cache unavailable, continuing without it",
			slog.String("addr", cfg.Addr),
			slog.String("error", err.Error()),
		)
		client.Close()
		return nil
	}

	logger.Info("lookup cache connected", slog.String("addr", cfg.Addr))
	return client
}

// NewRegistry builds every source adapter. Oxford, Collins and Longman have
// no lookup implementation and are registered as empty stubs so that their
// names stay valid in priority lists. When rdb is non-nil each adapter is
// wrapped in the Redis lookup cache.
func NewRegistry(cfg config.Config, rdb *redis.Client, logger *slog.Logger) *provider.Registry {
	src := cfg.Sources
	adapters := []provider.Adapter{
		cambridge.NewProvider(src.CambridgeURL, src.Timeout, src.UserAgent, logger),
		webster.NewProvider(src.WebsterURL, src.Timeout, src.UserAgent, logger),
		freedict.NewProvider(src.FreeDictURL, src.Timeout, logger),
	}
	adapters = append(adapters, stub.Defaults()...)

	if rdb != nil {
		adapters = cache.WrapAll(adapters, rdb, cfg.Cache.TTL, logger)
	}
	return provider.NewRegistry(adapters...)
}

// completer is the contract of the generative fallback clients.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter returns the configured fallback client, or nil when the
// fallback is disabled.
func NewCompleter(ctx context.Context, cfg config.FallbackConfig) (completer, error) {
	switch cfg.Provider {
	case config.FallbackAnthropic:
		return anthropic.New(cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Timeout), nil
	case config.FallbackGemini:
		c, err := gemini.New(ctx, cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Timeout, gemini.Options{})
		if err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}
		return c, nil
	}
	return nil, nil
}
