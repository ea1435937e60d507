package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/lingo-backend/internal/config"
	"github.com/heartmarshall/lingo-backend/internal/provider"
	"github.com/heartmarshall/lingo-backend/internal/service/acquisition"
	"github.com/heartmarshall/lingo-backend/internal/service/conversation"
	"github.com/heartmarshall/lingo-backend/internal/service/dictionary"
	"github.com/heartmarshall/lingo-backend/internal/service/learner"
	"github.com/heartmarshall/lingo-backend/internal/service/selector"
)

// Services is the wired service layer shared by the HTTP server and the CLI.
type Services struct {
	Acquisition  *acquisition.Service
	Dictionary   *dictionary.Service
	Selector     *selector.Service
	Learner      *learner.Service
	Conversation *conversation.Service

	Store *Store
	Redis *redis.Client
}

// Close releases the store and cache connections.
func (s *Services) Close() {
	if s.Redis != nil {
		s.Redis.Close()
	}
	s.Store.Close()
}

// NewServices opens the store, builds the source registry and the fallback,
// and wires every service.
func NewServices(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	store, err := OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	llm, err := NewCompleter(ctx, cfg.Fallback)
	if err != nil {
		store.Close()
		return nil, err
	}
	if llm == nil {
		logger.Info("generative fallback disabled")
	} else {
		logger.Info("generative fallback enabled",
			slog.String("provider", cfg.Fallback.Provider),
			slog.String("model", cfg.Fallback.Model),
		)
	}

	rdb := NewRedis(ctx, cfg.Cache, logger)
	registry := NewRegistry(*cfg, rdb, logger)

	svc := wireServices(cfg, logger, store, registry, llm)
	svc.Redis = rdb
	return svc, nil
}

func wireServices(cfg *config.Config, logger *slog.Logger, store *Store, registry *provider.Registry, llm completer) *Services {
	aggregator := acquisition.NewAggregator(logger, registry, cfg.Sources)
	filler := acquisition.NewGapFiller(logger, llm)
	acq := acquisition.NewService(logger, aggregator, filler, store.Entries, store.Learners)

	return &Services{
		Acquisition:  acq,
		Dictionary:   dictionary.NewService(logger, store.Entries, store.Tx),
		Selector:     selector.NewService(logger, store.Entries, store.Exposures, store.Learners, store.Tx),
		Learner:      learner.NewService(logger, store.Learners, store.Exposures, store.Tx, registry.Names()),
		Conversation: conversation.NewService(logger, acq),
		Store:        store,
	}
}
