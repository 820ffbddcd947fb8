package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tondrop/tondrop-go/internal/api"
	"github.com/tondrop/tondrop-go/internal/config"
	"github.com/tondrop/tondrop-go/internal/factory"
	"github.com/tondrop/tondrop-go/internal/notify"
	"github.com/tondrop/tondrop-go/internal/services/booster"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/services/referral"
	redisstorage "github.com/tondrop/tondrop-go/internal/storage/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	schedule, err := epoch.NewSchedule(cfg.Competition.Anchor, cfg.Competition.Period)
	if err != nil {
		logger.Error("invalid competition schedule", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// An empty bot token selects the no-op notifier
	var notifier notify.Notifier = notify.Noop{}
	if cfg.Telegram.BotToken != "" {
		notifier = notify.NewTelegram(cfg.Telegram.BotToken)
	}

	factoryCfg := factory.Config{
		Schedule: schedule,
		Booster: booster.Config{
			Factor:   cfg.Booster.Factor,
			Duration: cfg.Booster.Duration,
		},
		Rewards: referral.Config{
			RefereeReward:  cfg.Rewards.Referee,
			ReferrerReward: cfg.Rewards.Referrer,
		},
		Notifier:    notifier,
		Logger:      logger,
		StorageType: cfg.Storage.Type,
	}

	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Clock:              app.Clock,
		Schedule:           app.Schedule,
		LedgerService:      app.LedgerService,
		ReferralService:    app.ReferralService,
		LeaderboardService: app.LeaderboardService,
		AdminSecretHash:    cfg.Admin.SecretHash,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Server.Host
	serverConfig.Port = cfg.Server.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
