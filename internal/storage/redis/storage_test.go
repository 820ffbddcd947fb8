package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/tondrop/tondrop-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.OpTimeout = time.Second

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newPlayer(id model.PlayerID, username string) *model.Player {
	return model.NewPlayer(id, username, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

// Create / Get tests

func (s *StorageSuite) TestCreateAndGetPlayer() {
	player := s.newPlayer("1001", "alice")

	err := s.storage.CreatePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("alice", retrieved.Username)
}

func (s *StorageSuite) TestCreateExistingPlayer() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, s.newPlayer("1001", "alice")))

	err := s.storage.CreatePlayer(s.ctx, s.newPlayer("1001", "other"))
	s.ErrorIs(err, model.ErrPlayerExists)

	retrieved, err := s.storage.GetPlayer(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Username index tests

func (s *StorageSuite) TestGetPlayerByUsername() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, s.newPlayer("1001", "alice")))

	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("1001"), retrieved.ID)

	_, err = s.storage.GetPlayerByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUsernameIndexFollowsRename() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, s.newPlayer("1001", "alice")))

	_, err := s.storage.UpdatePlayer(s.ctx, "1001", func(p *model.Player) error {
		p.Username = "alice_renamed"
		return nil
	})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "alice_renamed")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("1001"), retrieved.ID)

	_, err = s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Update tests

func (s *StorageSuite) TestUpdatePlayer() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, s.newPlayer("1001", "alice")))

	updated, err := s.storage.UpdatePlayer(s.ctx, "1001", func(p *model.Player) error {
		p.TotalScore += 50
		return nil
	})
	s.Require().NoError(err)
	s.Equal(int64(50), updated.TotalScore)

	retrieved, err := s.storage.GetPlayer(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal(int64(50), retrieved.TotalScore)
}

func (s *StorageSuite) TestUpdatePlayerNotFound() {
	_, err := s.storage.UpdatePlayer(s.ctx, "nonexistent", func(p *model.Player) error {
		return nil
	})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpdateFnErrorAborts() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, s.newPlayer("1001", "alice")))

	_, err := s.storage.UpdatePlayer(s.ctx, "1001", func(p *model.Player) error {
		p.TotalScore = 9999
		return model.ErrAlreadyReferred
	})
	s.ErrorIs(err, model.ErrAlreadyReferred)

	retrieved, err := s.storage.GetPlayer(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal(int64(0), retrieved.TotalScore)
}

// Ranking tests

func (s *StorageSuite) seedScored(id model.PlayerID, username string, total, competition int64, epochStart time.Time) {
	p := s.newPlayer(id, username)
	p.TotalScore = total
	p.CompetitionScore = competition
	p.EpochStart = epochStart
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, p))
}

func (s *StorageSuite) TestTopPlayersByTotal() {
	epochStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seedScored("1001", "alice", 100, 10, epochStart)
	s.seedScored("2001", "bob", 60, 60, epochStart)
	s.seedScored("3001", "carol", 80, 80, epochStart)

	top, err := s.storage.TopPlayers(s.ctx, model.FieldTotal, epochStart, 2)
	s.Require().NoError(err)

	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("1001"), top[0].ID)
	s.Equal(model.PlayerID("3001"), top[1].ID)
}

func (s *StorageSuite) TestTopPlayersByCompetitionIsPerEpoch() {
	stale := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	current := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	s.seedScored("1001", "alice", 100, 100, stale)
	s.seedScored("2001", "bob", 10, 10, current)

	top, err := s.storage.TopPlayers(s.ctx, model.FieldCompetition, current, 10)
	s.Require().NoError(err)

	s.Require().Len(top, 1)
	s.Equal(model.PlayerID("2001"), top[0].ID)

	// The stale window's ranking is still queryable until its TTL lapses
	top, err = s.storage.TopPlayers(s.ctx, model.FieldCompetition, stale, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(model.PlayerID("1001"), top[0].ID)
}

func (s *StorageSuite) TestRankingFollowsUpdates() {
	epochStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seedScored("1001", "alice", 10, 10, epochStart)
	s.seedScored("2001", "bob", 20, 20, epochStart)

	_, err := s.storage.UpdatePlayer(s.ctx, "1001", func(p *model.Player) error {
		p.TotalScore = 30
		return nil
	})
	s.Require().NoError(err)

	top, err := s.storage.TopPlayers(s.ctx, model.FieldTotal, epochStart, 10)
	s.Require().NoError(err)

	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("1001"), top[0].ID)
}

// ListPlayers tests

func (s *StorageSuite) TestListPlayers() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, s.newPlayer("1001", "alice")))
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, s.newPlayer("2001", "bob")))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}
