package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tondrop/tondrop-go/internal/dependencies/clock"
	"github.com/tondrop/tondrop-go/internal/notify"
	"github.com/tondrop/tondrop-go/internal/services/booster"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/services/leaderboard"
	"github.com/tondrop/tondrop-go/internal/services/ledger"
	"github.com/tondrop/tondrop-go/internal/services/referral"
	"github.com/tondrop/tondrop-go/internal/storage"
	"github.com/tondrop/tondrop-go/internal/storage/memory"
	redisstorage "github.com/tondrop/tondrop-go/internal/storage/redis"
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
	Clock    clock.Clock
	Notifier notify.Notifier

	// Competition schedule, shared by every epoch-sensitive component
	Schedule epoch.Schedule

	// Services
	BoosterService     *booster.Service
	LedgerService      *ledger.Service
	ReferralService    *referral.Service
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Schedule is the competition epoch schedule; the zero value selects
	// epoch.DefaultPeriod from the zero anchor
	Schedule epoch.Schedule
	// Booster holds multiplier settings (optional, defaults used if zero)
	Booster booster.Config
	// Rewards holds referral reward amounts (optional, defaults used if zero)
	Rewards referral.Config
	// Notifier delivers outbound messages (optional, defaults to no-op)
	Notifier notify.Notifier
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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

	schedule := cfg.Schedule
	if schedule.Period() == 0 {
		var err error
		schedule, err = epoch.NewSchedule(schedule.Anchor(), epoch.DefaultPeriod)
		if err != nil {
			return nil, err
		}
	}

	boosterCfg := cfg.Booster
	if boosterCfg.Factor == 0 {
		boosterCfg = booster.DefaultConfig()
	}

	rewards := cfg.Rewards
	if rewards.RefereeReward == 0 && rewards.ReferrerReward == 0 {
		rewards = referral.DefaultConfig()
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}

	return newWithDependencies(store, clock.New(), schedule, boosterCfg, rewards, notifier, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	schedule epoch.Schedule,
	boosterCfg booster.Config,
	rewards referral.Config,
	notifier notify.Notifier,
	logger *slog.Logger,
) (*App, error) {
	boosterService, err := booster.New(boosterCfg)
	if err != nil {
		return nil, err
	}

	ledgerService := ledger.New(store, schedule, boosterService, clk, notifier, logger)
	referralService := referral.New(store, ledgerService, rewards, notifier, logger)
	leaderboardService := leaderboard.New(store, schedule, clk)

	return &App{
		Storage:            store,
		Clock:              clk,
		Notifier:           notifier,
		Schedule:           schedule,
		BoosterService:     boosterService,
		LedgerService:      ledgerService,
		ReferralService:    referralService,
		LeaderboardService: leaderboardService,
	}, nil
}
