package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tondrop/tondrop-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: a plain submission, then a boosted one
func (s *IntegrationSuite) TestScoreThenBoosterFlow() {
	p, err := s.app.LedgerService.SubmitScore(s.ctx, "alice", "Alice", 50)
	s.Require().NoError(err)
	s.Equal(int64(50), p.TotalScore)
	s.Equal(int64(50), p.CompetitionScore)

	_, err = s.app.LedgerService.GrantBooster(s.ctx, "alice")
	s.Require().NoError(err)

	p, err = s.app.LedgerService.SubmitScore(s.ctx, "alice", "Alice", 50)
	s.Require().NoError(err)
	s.Equal(int64(550), p.TotalScore)
	s.Equal(int64(550), p.CompetitionScore)
}

// Test: the full referral reward round trip and its idempotency
func (s *IntegrationSuite) TestReferralFlow() {
	_, err := s.app.LedgerService.SubmitScore(s.ctx, "ref-1", "Referrer", 10)
	s.Require().NoError(err)

	outcome, err := s.app.ReferralService.Register(s.ctx, "new-1", "Newbie", "Referrer")
	s.Require().NoError(err)
	s.Equal(int64(500), outcome.Referee.TotalScore)
	s.Equal(int64(500), outcome.Referee.CompetitionScore)
	s.Equal(int64(1010), outcome.Referrer.TotalScore)
	s.Equal(1, outcome.Referrer.Referrals)

	// Repeating the identical call changes nothing.
	_, err = s.app.ReferralService.Register(s.ctx, "new-1", "Newbie", "Referrer")
	s.ErrorIs(err, model.ErrAlreadyReferred)

	referrer, err := s.app.LedgerService.Get(s.ctx, "ref-1")
	s.Require().NoError(err)
	s.Equal(int64(1010), referrer.TotalScore)
	s.Equal(1, referrer.Referrals)
}

// Test: epoch rollover resets competition scores but not totals
func (s *IntegrationSuite) TestEpochRolloverFlow() {
	_, err := s.app.LedgerService.SubmitScore(s.ctx, "alice", "Alice", 100)
	s.Require().NoError(err)

	s.app.MockClock.Advance(14 * 24 * time.Hour)

	p, err := s.app.LedgerService.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(100), p.TotalScore)
	s.Equal(int64(0), p.CompetitionScore)

	p, err = s.app.LedgerService.SubmitScore(s.ctx, "alice", "Alice", 30)
	s.Require().NoError(err)
	s.Equal(int64(130), p.TotalScore)
	s.Equal(int64(30), p.CompetitionScore)
}

// Test: competition leaderboard only ranks the current window
func (s *IntegrationSuite) TestLeaderboardAcrossEpochs() {
	_, err := s.app.LedgerService.SubmitScore(s.ctx, "alice", "Alice", 100)
	s.Require().NoError(err)
	_, err = s.app.LedgerService.SubmitScore(s.ctx, "bob", "Bob", 60)
	s.Require().NoError(err)

	s.app.MockClock.Advance(14 * 24 * time.Hour)

	_, err = s.app.LedgerService.SubmitScore(s.ctx, "bob", "Bob", 10)
	s.Require().NoError(err)

	total, err := s.app.LeaderboardService.Top(s.ctx, model.FieldTotal, 10)
	s.Require().NoError(err)
	s.Require().Len(total, 2)
	s.Equal(model.PlayerID("alice"), total[0].PlayerID)
	s.Equal(int64(100), total[0].Value)

	competition, err := s.app.LeaderboardService.Top(s.ctx, model.FieldCompetition, 10)
	s.Require().NoError(err)
	s.Require().Len(competition, 1)
	s.Equal(model.PlayerID("bob"), competition[0].PlayerID)
	s.Equal(int64(10), competition[0].Value)
}
