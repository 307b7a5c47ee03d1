package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/shop_catalog/internal/app"
	"github.com/Skotchmaster/shop_catalog/internal/config"
	"github.com/Skotchmaster/shop_catalog/internal/events"
	"github.com/Skotchmaster/shop_catalog/internal/httpserver"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
	"github.com/Skotchmaster/shop_catalog/internal/repo"
	"github.com/Skotchmaster/shop_catalog/internal/search"
	"github.com/Skotchmaster/shop_catalog/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}

	var pub events.Publisher = events.Noop{}
	if cfg.KafkaAddress != "" {
		pub = events.NewKafkaPublisher(cfg.KafkaAddress)
		logger.Info("kafka_enabled", "address", cfg.KafkaAddress)
	}

	opts := app.Options{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		HashCost:    cfg.HashCost,
		HashWorkers: cfg.HashWorkers,
		HashQueue:   cfg.HashQueue,
		Events:      pub,
	}
	if cfg.ESURL != "" {
		es, err := search.NewClient(ctx, search.Options{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			logger.Error("search_init_failed", "error", err)
			os.Exit(1)
		}
		opts.Index = search.NewIndex(es, cfg.ESIndex)
	}

	val, err := transport.NewValidator(cfg.PasswordMinLength)
	if err != nil {
		logger.Error("validator_init_failed", "error", err)
		os.Exit(1)
	}

	a := app.New(db, opts)

	e := httpserver.New(&httpserver.Deps{
		App:       a,
		Validator: val,
		Logger:    logger,
		Ready: func(ctx context.Context) error {
			return repo.Ping(ctx, db)
		},
		SearchEnabled: opts.Index != nil,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	go func() {
		<-quit
		logger.Warn("force exit")
		os.Exit(1)
	}()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := a.Close(); err != nil {
		logger.Error("app_close_failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
