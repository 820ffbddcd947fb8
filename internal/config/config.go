package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backend names
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the full typed application configuration, loaded from an
// optional YAML file with TONDROP_* environment overrides
type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Competition CompetitionConfig
	Rewards     RewardsConfig
	Booster     BoosterConfig
	Admin       AdminConfig
	Telegram    TelegramConfig
	Log         LogConfig
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string
	Port int
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Type     string
	RedisURL string
}

// CompetitionConfig pins the global epoch schedule
type CompetitionConfig struct {
	// Anchor is the program start instant every epoch boundary derives from
	Anchor time.Time
	Period time.Duration
}

// RewardsConfig holds the one-time referral reward amounts
type RewardsConfig struct {
	Referee  int64
	Referrer int64
}

// BoosterConfig holds booster multiplier settings
type BoosterConfig struct {
	Factor   int64
	Duration time.Duration
}

// AdminConfig guards the admin endpoints. SecretHash is a bcrypt hash of
// the admin bearer token; empty disables the endpoints entirely.
type AdminConfig struct {
	SecretHash string
}

// TelegramConfig configures the outbound notifier. An empty token selects
// the no-op notifier.
type TelegramConfig struct {
	BotToken string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from the given file (optional when empty) and
// the environment
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.type", StorageMemory)
	v.SetDefault("storage.redis_url", "redis://localhost:6379")
	v.SetDefault("competition.anchor", "2024-01-01T00:00:00Z")
	v.SetDefault("competition.period_days", 14)
	v.SetDefault("rewards.referee", 500)
	v.SetDefault("rewards.referrer", 1000)
	v.SetDefault("booster.factor", 10)
	v.SetDefault("booster.duration_hours", 24)
	v.SetDefault("admin.secret_hash", "")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("TONDROP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	anchor, err := time.Parse(time.RFC3339, v.GetString("competition.anchor"))
	if err != nil {
		return nil, fmt.Errorf("invalid competition anchor: %w", err)
	}

	periodDays := v.GetInt("competition.period_days")
	if periodDays <= 0 {
		return nil, fmt.Errorf("competition period must be positive, got %d days", periodDays)
	}

	return &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Storage: StorageConfig{
			Type:     v.GetString("storage.type"),
			RedisURL: v.GetString("storage.redis_url"),
		},
		Competition: CompetitionConfig{
			Anchor: anchor,
			Period: time.Duration(periodDays) * 24 * time.Hour,
		},
		Rewards: RewardsConfig{
			Referee:  v.GetInt64("rewards.referee"),
			Referrer: v.GetInt64("rewards.referrer"),
		},
		Booster: BoosterConfig{
			Factor:   v.GetInt64("booster.factor"),
			Duration: time.Duration(v.GetInt("booster.duration_hours")) * time.Hour,
		},
		Admin: AdminConfig{
			SecretHash: v.GetString("admin.secret_hash"),
		},
		Telegram: TelegramConfig{
			BotToken: v.GetString("telegram.bot_token"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}, nil
}
