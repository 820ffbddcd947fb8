package booster

import (
	"time"

	"github.com/tondrop/tondrop-go/internal/model"
)

// Config holds booster tuning parameters
type Config struct {
	// Factor multiplies raw scores while a booster window is active.
	// Integer so multiplied scores stay exact in integer score units.
	Factor int64
	// Duration is added to the window on each grant
	Duration time.Duration
}

// DefaultConfig returns the standard booster parameters
func DefaultConfig() Config {
	return Config{
		Factor:   10,
		Duration: 24 * time.Hour,
	}
}

// Service computes active multipliers and booster window extensions
type Service struct {
	cfg Config
}

// New creates a booster manager. The configured duration must be positive
// and the factor at least 1.
func New(cfg Config) (*Service, error) {
	if cfg.Duration <= 0 {
		return nil, model.ErrInvalidDuration
	}
	if cfg.Factor < 1 {
		return nil, model.ErrInvalidInput
	}
	return &Service{cfg: cfg}, nil
}

// Multiplier returns the score multiplier in effect for a player at now:
// the boost factor inside an unexpired window, 1 otherwise
func (s *Service) Multiplier(p *model.Player, now time.Time) int64 {
	if p.BoosterActive(now) {
		return s.cfg.Factor
	}
	return 1
}

// Grant extends the player's booster window in place and returns the new
// expiry. The window grows from whichever is later of now and the current
// unexpired expiry, so a grant never shortens an existing window.
func (s *Service) Grant(p *model.Player, now time.Time) time.Time {
	base := now
	if p.BoosterExpiry != nil && p.BoosterExpiry.After(base) {
		base = *p.BoosterExpiry
	}
	expiry := base.Add(s.cfg.Duration)
	p.BoosterExpiry = &expiry
	return expiry
}
