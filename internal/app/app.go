// Package app is the composition root: it loads configuration, wires the
// store, sources and services, and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/lingo-backend/internal/auth"
	"github.com/heartmarshall/lingo-backend/internal/config"
	"github.com/heartmarshall/lingo-backend/internal/transport/middleware"
	"github.com/heartmarshall/lingo-backend/internal/transport/rest"
)

// Run serves the REST API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("database_driver", cfg.Database.Driver),
	)

	svc, err := NewServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	handler, stop := NewHandler(cfg, svc, logger)
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

// NewHandler builds the REST router behind the middleware chain. The returned
// func stops the rate limiter's cleanup loop.
func NewHandler(cfg *config.Config, svc *Services, logger *slog.Logger) (http.Handler, func()) {
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	health := rest.NewHealthHandler(svc.Store, Version)
	if svc.Redis != nil {
		health.WithOptional("cache", rest.PingFunc(func(ctx context.Context) error {
			return svc.Redis.Ping(ctx).Err()
		}))
	}

	mux := rest.NewRouter(rest.Handlers{
		Health:       health,
		Words:        rest.NewWordsHandler(svc.Acquisition, svc.Dictionary, svc.Selector, logger),
		Learner:      rest.NewLearnerHandler(svc.Learner, logger),
		Conversation: rest.NewConversationHandler(svc.Conversation, logger),
		Admin:        rest.NewAdminHandler(svc.Dictionary, svc.Learner, logger),
	})

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(tokens),
		limiter.Limit(cfg.RateLimit.RequestsPerMinute),
	)(mux)

	return handler, limiter.Stop
}
