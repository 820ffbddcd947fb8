package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tondrop/tondrop-go/internal/dependencies/mocks"
	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/notify"
	"github.com/tondrop/tondrop-go/internal/services/booster"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/storage/memory"
	"github.com/tondrop/tondrop-go/internal/testutil"
)

var testAnchor = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(testAnchor.Add(12 * time.Hour))
	s.ctx = context.Background()

	schedule, err := epoch.NewSchedule(testAnchor, epoch.DefaultPeriod)
	s.Require().NoError(err)

	boosterService, err := booster.New(booster.DefaultConfig())
	s.Require().NoError(err)

	s.service = New(s.storage, schedule, boosterService, s.clock, notify.Noop{}, testutil.NopLogger())
}

// Ensure tests

func (s *ServiceSuite) TestEnsureCreatesPlayer() {
	p, err := s.service.Ensure(s.ctx, "1001", "alice")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("1001"), p.ID)
	s.Equal("alice", p.Username)
	s.Equal(int64(0), p.TotalScore)
	s.Equal(s.clock.Now(), p.CreatedAt)
}

func (s *ServiceSuite) TestEnsureIsIdempotent() {
	_, err := s.service.SubmitScore(s.ctx, "1001", "alice", 10)
	s.Require().NoError(err)

	p, err := s.service.Ensure(s.ctx, "1001", "other-name")
	s.Require().NoError(err)

	// The existing record wins; ensure never overwrites
	s.Equal("alice", p.Username)
	s.Equal(int64(10), p.TotalScore)
}

func (s *ServiceSuite) TestEnsureRejectsEmptyID() {
	_, err := s.service.Ensure(s.ctx, "", "alice")
	s.ErrorIs(err, model.ErrInvalidInput)
}

// SubmitScore tests

func (s *ServiceSuite) TestSubmitScoreCreditsBothFields() {
	p, err := s.service.SubmitScore(s.ctx, "1001", "alice", 50)
	s.Require().NoError(err)

	s.Equal(int64(50), p.TotalScore)
	s.Equal(int64(50), p.CompetitionScore)

	p, err = s.service.SubmitScore(s.ctx, "1001", "alice", 30)
	s.Require().NoError(err)
	s.Equal(int64(80), p.TotalScore)
	s.Equal(int64(80), p.CompetitionScore)
}

func (s *ServiceSuite) TestSubmitScoreRejectsNonPositive() {
	_, err := s.service.SubmitScore(s.ctx, "1001", "alice", 0)
	s.ErrorIs(err, model.ErrInvalidScore)

	_, err = s.service.SubmitScore(s.ctx, "1001", "alice", -5)
	s.ErrorIs(err, model.ErrInvalidScore)

	_, err = s.service.SubmitScore(s.ctx, "", "alice", 10)
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *ServiceSuite) TestSubmitScoreAppliesBoosterMultiplier() {
	_, err := s.service.GrantBooster(s.ctx, "1001")
	s.Require().NoError(err)

	p, err := s.service.SubmitScore(s.ctx, "1001", "alice", 50)
	s.Require().NoError(err)
	s.Equal(int64(500), p.TotalScore)

	// Expired booster reverts to 1x
	s.clock.Advance(25 * time.Hour)
	p, err = s.service.SubmitScore(s.ctx, "1001", "alice", 10)
	s.Require().NoError(err)
	s.Equal(int64(510), p.TotalScore)
}

func (s *ServiceSuite) TestSubmitScoreRollsStaleEpoch() {
	_, err := s.service.SubmitScore(s.ctx, "1001", "alice", 100)
	s.Require().NoError(err)

	s.clock.Advance(14 * 24 * time.Hour)

	p, err := s.service.SubmitScore(s.ctx, "1001", "alice", 30)
	s.Require().NoError(err)
	s.Equal(int64(130), p.TotalScore)
	s.Equal(int64(30), p.CompetitionScore)
}

func (s *ServiceSuite) TestSubmitScoreUpdatesUsername() {
	_, err := s.service.SubmitScore(s.ctx, "1001", "alice", 10)
	s.Require().NoError(err)

	p, err := s.service.SubmitScore(s.ctx, "1001", "alice_renamed", 10)
	s.Require().NoError(err)
	s.Equal("alice_renamed", p.Username)

	// Empty username leaves the stored one alone
	p, err = s.service.SubmitScore(s.ctx, "1001", "", 10)
	s.Require().NoError(err)
	s.Equal("alice_renamed", p.Username)
}

// SetWallet / SetDisplayName tests

func (s *ServiceSuite) TestSetWallet() {
	p, err := s.service.SetWallet(s.ctx, "1001", "alice", "EQtest-wallet")
	s.Require().NoError(err)
	s.Equal("EQtest-wallet", p.Wallet)

	// Last write wins
	p, err = s.service.SetWallet(s.ctx, "1001", "", "EQother-wallet")
	s.Require().NoError(err)
	s.Equal("EQother-wallet", p.Wallet)

	_, err = s.service.SetWallet(s.ctx, "1001", "", "")
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *ServiceSuite) TestSetDisplayName() {
	p, err := s.service.SetDisplayName(s.ctx, "1001", "alice")
	s.Require().NoError(err)
	s.Equal("alice", p.Username)

	_, err = s.service.SetDisplayName(s.ctx, "1001", "")
	s.ErrorIs(err, model.ErrInvalidInput)
}

// GrantBooster tests

func (s *ServiceSuite) TestGrantBoosterSetsExpiry() {
	p, err := s.service.GrantBooster(s.ctx, "1001")
	s.Require().NoError(err)

	s.Require().NotNil(p.BoosterExpiry)
	s.Equal(s.clock.Now().Add(24*time.Hour), *p.BoosterExpiry)
}

func (s *ServiceSuite) TestGrantBoosterStacks() {
	_, err := s.service.GrantBooster(s.ctx, "1001")
	s.Require().NoError(err)
	first := s.clock.Now().Add(24 * time.Hour)

	s.clock.Advance(1 * time.Hour)
	p, err := s.service.GrantBooster(s.ctx, "1001")
	s.Require().NoError(err)

	// Second grant extends from the unexpired expiry, not from now
	s.Require().NotNil(p.BoosterExpiry)
	s.Equal(first.Add(24*time.Hour), *p.BoosterExpiry)
}

// MarkReferred tests

func (s *ServiceSuite) TestMarkReferredSetsEdgeAndReward() {
	p, err := s.service.MarkReferred(s.ctx, "1001", "alice", "bob", 500)
	s.Require().NoError(err)

	s.Equal("bob", p.ReferredBy)
	s.Equal(int64(500), p.TotalScore)
	s.Equal(int64(500), p.CompetitionScore)
}

func (s *ServiceSuite) TestMarkReferredIsWriteOnce() {
	_, err := s.service.MarkReferred(s.ctx, "1001", "alice", "bob", 500)
	s.Require().NoError(err)

	_, err = s.service.MarkReferred(s.ctx, "1001", "alice", "carol", 500)
	s.ErrorIs(err, model.ErrAlreadyReferred)

	// The failed attempt must not have credited anything
	p, err := s.service.Get(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal("bob", p.ReferredBy)
	s.Equal(int64(500), p.TotalScore)
}

// ApplyReferralReward tests

func (s *ServiceSuite) TestApplyReferralReward() {
	_, err := s.service.SubmitScore(s.ctx, "1001", "alice", 10)
	s.Require().NoError(err)

	p, err := s.service.ApplyReferralReward(s.ctx, "1001", 1000, true)
	s.Require().NoError(err)
	s.Equal(int64(1010), p.TotalScore)
	s.Equal(1, p.Referrals)
}

func (s *ServiceSuite) TestApplyReferralRewardRequiresExistingPlayer() {
	_, err := s.service.ApplyReferralReward(s.ctx, "9999", 1000, true)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Get / List tests

func (s *ServiceSuite) TestGetNormalizesWithoutPersisting() {
	_, err := s.service.SubmitScore(s.ctx, "1001", "alice", 100)
	s.Require().NoError(err)

	s.clock.Advance(14 * 24 * time.Hour)

	p, err := s.service.Get(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal(int64(100), p.TotalScore)
	s.Equal(int64(0), p.CompetitionScore)

	// The stored record still carries the old epoch score
	stored, err := s.storage.GetPlayer(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal(int64(100), stored.CompetitionScore)
}

func (s *ServiceSuite) TestGetUnknownPlayer() {
	_, err := s.service.Get(s.ctx, "9999")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestListNormalizesEveryPlayer() {
	_, err := s.service.SubmitScore(s.ctx, "1001", "alice", 100)
	s.Require().NoError(err)
	s.clock.Advance(14 * 24 * time.Hour)
	_, err = s.service.SubmitScore(s.ctx, "2001", "bob", 40)
	s.Require().NoError(err)

	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)

	byID := map[model.PlayerID]*model.Player{}
	for _, p := range players {
		byID[p.ID] = p
	}
	s.Equal(int64(0), byID["1001"].CompetitionScore)
	s.Equal(int64(40), byID["2001"].CompetitionScore)
}
