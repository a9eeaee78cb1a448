package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"github.com/Phronesis2025/wcs-basketball-go/internal/api"
	"github.com/Phronesis2025/wcs-basketball-go/internal/factory"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/pricing"
	redisstorage "github.com/Phronesis2025/wcs-basketball-go/internal/storage/redis"
)

// envConfig is populated from environment variables
type envConfig struct {
	Port               int    `env:"PORT" envDefault:"8080"`
	StorageType        string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL           string `env:"REDIS_URL"`
	WebhookSecret      string `env:"WEBHOOK_SECRET"`
	AnnualFee          string `env:"ANNUAL_FEE"`
	QuarterlyLookupURL string `env:"QUARTERLY_FEE_URL"`
}

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		logger.Error("failed to parse environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: envCfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if envCfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = envCfg.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Configure pricing overrides
	pricingCfg := pricing.DefaultConfig()
	if envCfg.AnnualFee != "" {
		fee, err := decimal.NewFromString(envCfg.AnnualFee)
		if err != nil {
			logger.Error("invalid ANNUAL_FEE", slog.String("error", err.Error()))
			os.Exit(1)
		}
		pricingCfg.AnnualFeePerChild = fee
	}
	if envCfg.QuarterlyLookupURL != "" {
		pricingCfg.QuarterlyLookupURL = envCfg.QuarterlyLookupURL
	}
	cfg.PricingConfig = pricingCfg

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start the notification worker
	go app.NotificationQueue.Run()
	defer app.NotificationQueue.Stop()

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:                 logger,
		Storage:                app.Storage,
		Clock:                  app.Clock,
		AuthService:            app.AuthService,
		RegistrationController: app.RegistrationController,
		BillingService:         app.BillingService,
		LedgerService:          app.LedgerService,
		WebhookSecret:          envCfg.WebhookSecret,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = envCfg.Port
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
