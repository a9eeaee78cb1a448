package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/clock"
	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/random"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/auth"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/billing"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/ledger"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/notification"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/pricing"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/registration"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage/memory"
	redisstorage "github.com/Phronesis2025/wcs-basketball-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService            *auth.Service
	PricingProvider        pricing.Provider
	NotificationQueue      *notification.Queue
	RegistrationController *registration.Controller
	BillingService         *billing.Service
	LedgerService          *ledger.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// PricingConfig holds fee sourcing configuration (optional)
	PricingConfig pricing.Config
	// NotificationConfig holds dispatcher queue settings (optional)
	NotificationConfig notification.Config
	// Sender delivers notifications (optional)
	// If nil, notifications are logged only
	Sender notification.Sender
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	pricingCfg := cfg.PricingConfig
	if pricingCfg.AnnualFeePerChild.IsZero() {
		pricingCfg = pricing.DefaultConfig()
	}
	pricingProvider := pricing.New(pricingCfg, logger)

	sender := cfg.Sender
	if sender == nil {
		sender = notification.LogSender{Logger: logger}
	}
	notifCfg := cfg.NotificationConfig
	if notifCfg.QueueSize == 0 {
		notifCfg = notification.DefaultConfig()
	}
	queue := notification.NewQueue(sender, notifCfg, logger)

	app := newWithDependencies(store, clk, rnd, queue, pricingProvider, cfg.AuthConfig, logger)
	app.NotificationQueue = queue
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	dispatcher notification.Dispatcher,
	pricingProvider pricing.Provider,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	authService := auth.New(store, clk, authCfg)
	registrationController := registration.NewController(store, dispatcher, clk, rnd, logger)
	billingService := billing.New(store, pricingProvider, logger)
	ledgerService := ledger.New(store, registrationController, clk, logger)

	return &App{
		Storage:                store,
		Clock:                  clk,
		Random:                 rnd,
		AuthService:            authService,
		PricingProvider:        pricingProvider,
		RegistrationController: registrationController,
		BillingService:         billingService,
		LedgerService:          ledgerService,
	}
}
