package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marshmallow-code/dashboard/internal/cache"
	"github.com/marshmallow-code/dashboard/internal/core/config"
	"github.com/marshmallow-code/dashboard/internal/dashboard"
	"github.com/marshmallow-code/dashboard/internal/dataset"
	"github.com/marshmallow-code/dashboard/internal/server"
	"github.com/marshmallow-code/dashboard/internal/source"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)
	slog.Info("Loaded config",
		"address", cfg.Server.Addr(),
		"static_source", cfg.Source.UseStatic,
		"window_days", cfg.Warehouse.WindowDays,
		"memoize_charts", cfg.Cache.MemoizeCharts,
	)

	cacheTTL, err := time.ParseDuration(cfg.Cache.TTL)
	if err != nil {
		slog.Error("Invalid cache ttl", "value", cfg.Cache.TTL, "error", err)
		os.Exit(1)
	}
	fetchTimeout, err := time.ParseDuration(cfg.Warehouse.FetchTimeout)
	if err != nil {
		slog.Error("Invalid fetch timeout", "value", cfg.Warehouse.FetchTimeout, "error", err)
		os.Exit(1)
	}

	// 2. Initialize Cache (Redis)
	store, err := cache.NewRedis(context.Background(), cfg.Cache.URL)
	if err != nil {
		slog.Error("Failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 3. Initialize Data Source (BigQuery, or a static CSV for offline work)
	var recordSource source.RecordSource
	if cfg.Source.UseStatic {
		slog.Debug("Using static data", "path", cfg.Source.StaticPath)
		recordSource = source.NewStatic(cfg.Source.StaticPath)
	} else {
		warehouse, err := source.NewBigQuery(
			context.Background(),
			source.Credentials{
				ProjectID:    cfg.Warehouse.ProjectID,
				PrivateKeyID: cfg.Warehouse.PrivateKeyID,
				PrivateKey:   cfg.Warehouse.PrivateKey,
				ClientEmail:  cfg.Warehouse.ClientEmail,
				TokenURI:     cfg.Warehouse.TokenURI,
			},
			cfg.Warehouse.Dataset,
			cfg.Warehouse.TablePrefix,
			fetchTimeout,
		)
		if err != nil {
			slog.Error("Failed to initialize warehouse client", "error", err)
			os.Exit(1)
		}
		defer warehouse.Close()
		recordSource = warehouse
	}

	// 4. Initialize Dataset Provider (cached read-through over the source)
	provider := dataset.NewProvider(
		source.NewBreaker(recordSource),
		store,
		source.Window{Days: cfg.Warehouse.WindowDays},
		cacheTTL,
	)

	// 5. Initialize Dashboard Service
	svc := dashboard.NewService(provider, store, cfg.Cache.MemoizeCharts, cacheTTL)

	// 6. Initialize Server
	srv := server.New(cfg.Server.Addr(), store, cfg.Server.Mode)
	svc.RegisterRoutes(srv.Engine)

	// 7. Warm the figure cache so the first page load is served hot.
	// Startup continues on failure; charts render on demand instead.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), fetchTimeout)
	if err := svc.Warm(warmCtx); err != nil {
		slog.Warn("Figure warm-up failed", "error", err)
	}
	warmCancel()

	// 8. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler → triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}
