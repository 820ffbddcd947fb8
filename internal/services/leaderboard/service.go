package leaderboard

import (
	"context"
	"sort"

	"github.com/tondrop/tondrop-go/internal/dependencies/clock"
	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/storage"
)

// MaxLimit caps how many entries a single query may return
const MaxLimit = 100

// Entry is one ranked row
type Entry struct {
	PlayerID model.PlayerID
	Username string
	Value    int64
}

// Service produces top-N rankings over a score field. Results are a
// snapshot: they reflect some state that existed at query time, with no
// consistency guarantee across concurrent submissions.
type Service struct {
	storage  storage.Storage
	schedule epoch.Schedule
	clock    clock.Clock
}

// New creates a new leaderboard service
func New(storage storage.Storage, schedule epoch.Schedule, clock clock.Clock) *Service {
	return &Service{
		storage:  storage,
		schedule: schedule,
		clock:    clock,
	}
}

// Top returns up to n players ordered descending by the given field, ties
// broken by ascending player ID. n above MaxLimit is clamped. Competition
// rankings only include records from the current epoch window; a player
// whose last score belongs to an older window has epoch score zero and is
// omitted.
func (s *Service) Top(ctx context.Context, field model.ScoreField, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, model.ErrInvalidInput
	}
	if n > MaxLimit {
		n = MaxLimit
	}

	epochStart := s.schedule.Start(s.clock.Now())

	players, err := s.storage.TopPlayers(ctx, field, epochStart, n)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		var value int64
		switch field {
		case model.FieldCompetition:
			if !p.EpochStart.Equal(epochStart) {
				continue // stale window, epoch score is zero
			}
			value = p.CompetitionScore
		default:
			value = p.TotalScore
		}
		entries = append(entries, Entry{
			PlayerID: p.ID,
			Username: p.Username,
			Value:    value,
		})
	}

	// Backend ordering of equal scores is unspecified; re-sort for a
	// deterministic result.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
