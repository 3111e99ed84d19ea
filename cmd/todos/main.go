package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"

	"github.com/platinummonkey/todos/pkg/api"
	"github.com/platinummonkey/todos/pkg/auth"
	"github.com/platinummonkey/todos/pkg/config"
	"github.com/platinummonkey/todos/pkg/observability"
	"github.com/platinummonkey/todos/pkg/storage"
)

func main() {
	configFile := flag.String("config", "", "Path to optional YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		observability.NewLogger(observability.ErrorLevel, os.Stderr).WithError(err).Error("failed to load configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	store, err := storage.Open(context.Background(), cfg.Storage)
	if err != nil {
		logger.WithError(err).Error("failed to open storage")
		os.Exit(1)
	}
	logger.WithField("type", cfg.Storage.Type).Info("storage initialized")

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret))

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(nil)
	}

	server := api.NewServer(store, hasher, tokens, logger, metrics)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return store.Close()
	})

	go func() {
		logger.Infof("Listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server failed")
			os.Exit(1)
		}
	}()

	if err := shutdown.WaitForShutdown(); err != nil {
		os.Exit(1)
	}
}
