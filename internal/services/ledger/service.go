package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tondrop/tondrop-go/internal/dependencies/clock"
	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/notify"
	"github.com/tondrop/tondrop-go/internal/services/booster"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/storage"
)

// Service owns player records: scores, wallet, booster window and referral
// state. All mutations go through the storage layer's atomic per-player
// update, so the service itself holds no player state that could diverge
// from what is durably stored.
type Service struct {
	storage  storage.Storage
	schedule epoch.Schedule
	booster  *booster.Service
	clock    clock.Clock
	notifier notify.Notifier
	logger   *slog.Logger
}

// New creates a new ledger service
func New(
	storage storage.Storage,
	schedule epoch.Schedule,
	booster *booster.Service,
	clock clock.Clock,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:  storage,
		schedule: schedule,
		booster:  booster,
		clock:    clock,
		notifier: notifier,
		logger:   logger,
	}
}

// Ensure returns the player with the given ID, durably creating a
// zero-valued record if none exists. Concurrent calls for the same ID
// converge on a single record via the storage create-if-absent guard.
func (s *Service) Ensure(ctx context.Context, id model.PlayerID, username string) (*model.Player, error) {
	if id == "" {
		return nil, model.ErrInvalidInput
	}

	p, err := s.storage.GetPlayer(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	p = model.NewPlayer(id, username, s.clock.Now())
	err = s.storage.CreatePlayer(ctx, p)
	if err == nil {
		s.logger.Info("player created", slog.String("player_id", string(id)))
		return p, nil
	}
	if errors.Is(err, model.ErrPlayerExists) {
		// Lost the creation race; the winner's record is authoritative.
		return s.storage.GetPlayer(ctx, id)
	}
	return nil, err
}

// SubmitScore applies a raw score to both the cumulative and the epoch
// score, multiplied by the booster factor in effect at the submission
// instant. Unknown players are created first. The epoch score rolls into
// the current competition window before the delta applies.
func (s *Service) SubmitScore(ctx context.Context, id model.PlayerID, username string, raw int64) (*model.Player, error) {
	if id == "" {
		return nil, model.ErrInvalidInput
	}
	if raw <= 0 {
		return nil, model.ErrInvalidScore
	}

	now := s.clock.Now()
	epochStart := s.schedule.Start(now)

	var multiplier int64
	p, err := s.ensureAndUpdate(ctx, id, username, func(p *model.Player) error {
		multiplier = s.booster.Multiplier(p, now)
		p.Credit(raw*multiplier, epochStart, now)
		if username != "" {
			p.Username = username
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("score applied",
		slog.String("player_id", string(id)),
		slog.Int64("raw", raw),
		slog.Int64("multiplier", multiplier),
		slog.Int64("total", p.TotalScore),
	)
	return p, nil
}

// SetWallet saves the player's payout address, last write wins. Unknown
// players are created first.
func (s *Service) SetWallet(ctx context.Context, id model.PlayerID, username, wallet string) (*model.Player, error) {
	if id == "" || wallet == "" {
		return nil, model.ErrInvalidInput
	}

	now := s.clock.Now()
	return s.ensureAndUpdate(ctx, id, username, func(p *model.Player) error {
		p.Wallet = wallet
		if username != "" {
			p.Username = username
		}
		p.UpdatedAt = now
		return nil
	})
}

// SetDisplayName updates the player's display name, last write wins
func (s *Service) SetDisplayName(ctx context.Context, id model.PlayerID, username string) (*model.Player, error) {
	if id == "" || username == "" {
		return nil, model.ErrInvalidInput
	}

	now := s.clock.Now()
	return s.ensureAndUpdate(ctx, id, username, func(p *model.Player) error {
		p.Username = username
		p.UpdatedAt = now
		return nil
	})
}

// GrantBooster extends the player's booster window by the configured
// duration, creating the player if needed
func (s *Service) GrantBooster(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if id == "" {
		return nil, model.ErrInvalidInput
	}

	now := s.clock.Now()
	var expiry time.Time
	p, err := s.ensureAndUpdate(ctx, id, "", func(p *model.Player) error {
		expiry = s.booster.Grant(p, now)
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booster granted",
		slog.String("player_id", string(id)),
		slog.Time("expiry", expiry),
	)
	s.notifyAsync(id, fmt.Sprintf("🚀 Booster active! Your taps are multiplied until %s.", expiry.UTC().Format(time.RFC1123)))
	return p, nil
}

// MarkReferred sets the write-once referral edge on the referee and credits
// the signup reward in the same atomic update. The update fails with
// ErrAlreadyReferred if an edge already exists, which makes retries of the
// two-step referral transaction safe.
func (s *Service) MarkReferred(ctx context.Context, id model.PlayerID, username, referrerUsername string, reward int64) (*model.Player, error) {
	now := s.clock.Now()
	epochStart := s.schedule.Start(now)

	return s.ensureAndUpdate(ctx, id, username, func(p *model.Player) error {
		if p.ReferredBy != "" {
			return model.ErrAlreadyReferred
		}
		p.ReferredBy = referrerUsername
		if username != "" {
			p.Username = username
		}
		p.Credit(reward, epochStart, now)
		return nil
	})
}

// ApplyReferralReward credits a referral reward to both score fields of an
// existing player. When countReferral is set the player's referral count
// advances in the same update. Used only by the referral graph.
func (s *Service) ApplyReferralReward(ctx context.Context, id model.PlayerID, amount int64, countReferral bool) (*model.Player, error) {
	now := s.clock.Now()
	epochStart := s.schedule.Start(now)

	return s.storage.UpdatePlayer(ctx, id, func(p *model.Player) error {
		p.Credit(amount, epochStart, now)
		if countReferral {
			p.Referrals++
		}
		return nil
	})
}

// Get returns a snapshot of the player with any stale epoch score
// normalized to the current window. The normalization is not persisted;
// the next epoch-score write performs the durable catch-up.
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if id == "" {
		return nil, model.ErrInvalidInput
	}

	p, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	view := *p
	view.RollEpoch(s.schedule.Start(s.clock.Now()))
	return &view, nil
}

// List returns snapshots of every player, each normalized to the current
// window the same way Get is.
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	epochStart := s.schedule.Start(s.clock.Now())
	views := make([]*model.Player, 0, len(players))
	for _, p := range players {
		view := *p
		view.RollEpoch(epochStart)
		views = append(views, &view)
	}
	return views, nil
}

// ensureAndUpdate creates the player if absent, then applies fn atomically.
// Players are never deleted, so the update cannot miss after a successful
// ensure.
func (s *Service) ensureAndUpdate(ctx context.Context, id model.PlayerID, username string, fn storage.UpdateFn) (*model.Player, error) {
	if _, err := s.Ensure(ctx, id, username); err != nil {
		return nil, err
	}
	return s.storage.UpdatePlayer(ctx, id, fn)
}

// notifyAsync delivers a message without blocking the request. Failures
// are logged and never affect the already-committed mutation.
func (s *Service) notifyAsync(id model.PlayerID, text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.Send(ctx, id, text); err != nil {
			s.logger.Warn("notification failed",
				slog.String("player_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Interface for dependency injection
type ServiceInterface interface {
	Ensure(ctx context.Context, id model.PlayerID, username string) (*model.Player, error)
	SubmitScore(ctx context.Context, id model.PlayerID, username string, raw int64) (*model.Player, error)
	SetWallet(ctx context.Context, id model.PlayerID, username, wallet string) (*model.Player, error)
	SetDisplayName(ctx context.Context, id model.PlayerID, username string) (*model.Player, error)
	GrantBooster(ctx context.Context, id model.PlayerID) (*model.Player, error)
	MarkReferred(ctx context.Context, id model.PlayerID, username, referrerUsername string, reward int64) (*model.Player, error)
	ApplyReferralReward(ctx context.Context, id model.PlayerID, amount int64, countReferral bool) (*model.Player, error)
	Get(ctx context.Context, id model.PlayerID) (*model.Player, error)
	List(ctx context.Context) ([]*model.Player, error)
}

var _ ServiceInterface = (*Service)(nil)
