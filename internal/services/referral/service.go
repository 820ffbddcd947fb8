package referral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/notify"
	"github.com/tondrop/tondrop-go/internal/services/ledger"
	"github.com/tondrop/tondrop-go/internal/storage"
)

// Config holds the one-time referral reward amounts
type Config struct {
	RefereeReward  int64
	ReferrerReward int64
}

// DefaultConfig returns the standard reward amounts
func DefaultConfig() Config {
	return Config{
		RefereeReward:  500,
		ReferrerReward: 1000,
	}
}

// referrerCreditAttempts bounds in-process retries of the second reward step
const referrerCreditAttempts = 3

// Outcome reports both parties after an accepted referral
type Outcome struct {
	Referee  *model.Player
	Referrer *model.Player
}

// Service validates and records one-time referral edges and applies the
// rewards to both parties
type Service struct {
	storage  storage.Storage
	ledger   ledger.ServiceInterface
	cfg      Config
	notifier notify.Notifier
	logger   *slog.Logger
}

// New creates a new referral service
func New(
	storage storage.Storage,
	ledger ledger.ServiceInterface,
	cfg Config,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:  storage,
		ledger:   ledger,
		cfg:      cfg,
		notifier: notifier,
		logger:   logger,
	}
}

// Register records that the referee was invited by the named referrer and
// rewards both accounts. A player can be referred at most once: the edge is
// write-once and repeat calls fail with ErrAlreadyReferred without any
// score change.
//
// The reward is a two-step transaction. Step one marks the referee and
// credits the signup bonus atomically; the write-once edge doubles as the
// idempotency guard, so a retry after a partial failure can never apply the
// referee reward twice. Step two credits the referrer and is retried until
// it sticks, because once the edge exists the referrer must not stay
// uncredited.
func (s *Service) Register(ctx context.Context, refereeID model.PlayerID, refereeUsername, referrerUsername string) (*Outcome, error) {
	if refereeID == "" || referrerUsername == "" {
		return nil, model.ErrInvalidInput
	}
	if string(refereeID) == referrerUsername {
		return nil, model.ErrSelfReferral
	}

	// Pre-mutation checks, cheapest first. The authoritative already-referred
	// check happens again inside the atomic update below.
	existing, err := s.storage.GetPlayer(ctx, refereeID)
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}
	if existing != nil && existing.ReferredBy != "" {
		return nil, model.ErrAlreadyReferred
	}

	referrer, err := s.storage.GetPlayerByUsername(ctx, referrerUsername)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.ErrReferrerNotFound
		}
		return nil, err
	}
	if referrer.ID == refereeID {
		return nil, model.ErrSelfReferral
	}

	referee, err := s.ledger.MarkReferred(ctx, refereeID, refereeUsername, referrerUsername, s.cfg.RefereeReward)
	if err != nil {
		return nil, err
	}

	referrer, err = s.creditReferrer(ctx, referrer.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("referral accepted",
		slog.String("referee_id", string(refereeID)),
		slog.String("referrer_id", string(referrer.ID)),
	)
	s.notifyAsync(referrer.ID, fmt.Sprintf("🎉 %s joined with your invite! +%d points.", referee.Username, s.cfg.ReferrerReward))

	return &Outcome{Referee: referee, Referrer: referrer}, nil
}

// creditReferrer applies the referrer's reward and count bump, retrying
// transient storage failures so the committed referee edge is not left
// without a matching credit
func (s *Service) creditReferrer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var lastErr error
	for attempt := 0; attempt < referrerCreditAttempts; attempt++ {
		p, err := s.ledger.ApplyReferralReward(ctx, id, s.cfg.ReferrerReward, true)
		if err == nil {
			return p, nil
		}
		lastErr = err
		if !errors.Is(err, model.ErrStorageConflict) && !errors.Is(err, model.ErrStorageTimeout) {
			break
		}
		s.logger.Warn("referrer credit retry",
			slog.String("referrer_id", string(id)),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}
	return nil, lastErr
}

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
