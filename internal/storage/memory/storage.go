package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are copied on the way in and out so callers can never alias the
// stored state.
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	usernameIndex map[string]model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		usernameIndex: make(map[string]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; ok {
		return model.ErrPlayerExists
	}
	s.put(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	out := *p
	return &out, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	out := *p
	return &out, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, fn storage.UpdateFn) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}

	updated := *stored
	if err := fn(&updated); err != nil {
		return nil, err
	}

	if stored.Username != updated.Username && s.usernameIndex[stored.Username] == id {
		delete(s.usernameIndex, stored.Username)
	}
	s.put(&updated)

	out := updated
	return &out, nil
}

func (s *Storage) TopPlayers(ctx context.Context, field model.ScoreField, epochStart time.Time, n int) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		if field == model.FieldCompetition && !p.EpochStart.Equal(epochStart) {
			continue
		}
		out := *p
		candidates = append(candidates, &out)
	}

	sort.Slice(candidates, func(i, j int) bool {
		vi, vj := score(candidates[i], field), score(candidates[j], field)
		if vi != vj {
			return vi > vj
		}
		return candidates[i].ID < candidates[j].ID
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		out := *p
		players = append(players, &out)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}

// put stores a copy of the record and keeps the username index current.
// Callers hold the write lock.
func (s *Storage) put(player *model.Player) {
	stored := *player
	s.players[stored.ID] = &stored
	if stored.Username != "" {
		s.usernameIndex[stored.Username] = stored.ID
	}
}

func score(p *model.Player, field model.ScoreField) int64 {
	if field == model.FieldCompetition {
		return p.CompetitionScore
	}
	return p.TotalScore
}
