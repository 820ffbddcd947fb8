package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// OpTimeout bounds every storage operation; expiry surfaces as
	// model.ErrStorageTimeout
	OpTimeout time.Duration

	// UpdateAttempts bounds the optimistic retries of a contended player
	// update before giving up with model.ErrStorageConflict
	UpdateAttempts int

	// CompetitionRankTTL ages out the per-epoch ranking sets once their
	// window is long past
	CompetitionRankTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:                "redis://localhost:6379",
		PoolSize:           10,
		MinIdleConns:       2,
		OpTimeout:          5 * time.Second,
		UpdateAttempts:     5,
		CompetitionRankTTL: 35 * 24 * time.Hour,
	}
}
