package storage

import (
	"context"
	"time"

	"github.com/tondrop/tondrop-go/internal/model"
)

// UpdateFn mutates a player record inside an atomic update. Returning an
// error aborts the update without writing; the error is passed through to
// the caller unchanged.
type UpdateFn func(p *model.Player) error

// Storage defines the interface for data persistence
type Storage interface {
	// CreatePlayer stores a new player record. It fails with
	// model.ErrPlayerExists if the ID is already taken, so concurrent
	// creates for the same ID cannot produce duplicates.
	CreatePlayer(ctx context.Context, player *model.Player) error

	// GetPlayer fetches a player by ID, model.ErrPlayerNotFound if absent
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// GetPlayerByUsername resolves a display name to its most recently
	// saved player record
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)

	// UpdatePlayer applies fn to the player's record as an atomic
	// read-modify-write. Updates for the same player serialize; updates
	// for different players do not block each other.
	UpdatePlayer(ctx context.Context, id model.PlayerID, fn UpdateFn) (*model.Player, error)

	// TopPlayers returns up to n players ordered descending by the given
	// score field. For the competition field only records belonging to the
	// given epoch window are considered.
	TopPlayers(ctx context.Context, field model.ScoreField, epochStart time.Time, n int) ([]*model.Player, error)

	// ListPlayers returns every player record (admin export)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
}
