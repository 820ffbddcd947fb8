package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Player records are JSON blobs; ranking queries are served from ZSET
// indexes maintained alongside every write.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, playerKey(player.ID), data, 0).Result()
	if err != nil {
		return wrapErr(err)
	}
	if !created {
		return model.ErrPlayerExists
	}

	pipe := s.client.Pipeline()
	s.indexPlayer(ctx, pipe, player)
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapErr(err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return s.getPlayer(ctx, s.client, id)
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, wrapErr(err)
	}

	return s.getPlayer(ctx, s.client, model.PlayerID(idStr))
}

// UpdatePlayer applies fn under an optimistic WATCH/MULTI transaction.
// Concurrent writers to the same player are detected by Redis and retried
// up to the configured attempt budget; writers to other players proceed
// independently.
func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, fn storage.UpdateFn) (*model.Player, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	key := playerKey(id)

	var updated *model.Player
	for attempt := 0; attempt < s.cfg.UpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := s.getPlayer(ctx, tx, id)
			if err != nil {
				return err
			}

			next := *current
			if err := fn(&next); err != nil {
				return err
			}

			data, err := json.Marshal(&next)
			if err != nil {
				return err
			}

			// If the display name changed and the old name still points at
			// this player, the stale index entry goes away with the write.
			dropOldIndex := false
			if current.Username != "" && current.Username != next.Username {
				owner, err := tx.Get(ctx, usernameIndexKey(current.Username)).Result()
				if err != nil && !errors.Is(err, redis.Nil) {
					return err
				}
				dropOldIndex = owner == string(id)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, 0)
				if dropOldIndex {
					pipe.Del(ctx, usernameIndexKey(current.Username))
				}
				s.indexPlayer(ctx, pipe, &next)
				return nil
			})
			if err != nil {
				return err
			}

			updated = &next
			return nil
		}, key)

		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, wrapErr(err)
	}

	return nil, model.ErrStorageConflict
}

func (s *Storage) TopPlayers(ctx context.Context, field model.ScoreField, epochStart time.Time, n int) ([]*model.Player, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rankKey := totalRankKey()
	if field == model.FieldCompetition {
		rankKey = competitionRankKey(epochStart)
	}

	ids, err := s.client.ZRevRange(ctx, rankKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	return s.fetchPlayers(ctx, ids)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	return s.fetchPlayers(ctx, ids)
}

// indexPlayer queues the secondary index writes for a player record:
// membership set, username lookup and ranking ZSETs
func (s *Storage) indexPlayer(ctx context.Context, pipe redis.Pipeliner, player *model.Player) {
	pipe.SAdd(ctx, playersIndexKey(), string(player.ID))
	if player.Username != "" {
		pipe.Set(ctx, usernameIndexKey(player.Username), string(player.ID), 0)
	}

	pipe.ZAdd(ctx, totalRankKey(), redis.Z{
		Score:  float64(player.TotalScore),
		Member: string(player.ID),
	})

	if !player.EpochStart.IsZero() {
		rankKey := competitionRankKey(player.EpochStart)
		pipe.ZAdd(ctx, rankKey, redis.Z{
			Score:  float64(player.CompetitionScore),
			Member: string(player.ID),
		})
		pipe.Expire(ctx, rankKey, s.cfg.CompetitionRankTTL)
	}
}

// getPlayer fetches and decodes one record through any command runner
// (plain client or WATCH transaction)
func (s *Storage) getPlayer(ctx context.Context, c redis.Cmdable, id model.PlayerID) (*model.Player, error) {
	data, err := c.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, wrapErr(err)
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// fetchPlayers resolves a list of IDs with one MGET, skipping records that
// disappeared between the index read and the fetch
func (s *Storage) fetchPlayers(ctx context.Context, ids []string) ([]*model.Player, error) {
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}
	return players, nil
}

// opCtx bounds a storage operation with the configured timeout
func (s *Storage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.OpTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.OpTimeout)
}

// wrapErr converts deadline expiry into the retryable timeout sentinel
func wrapErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.ErrStorageTimeout
	}
	return err
}
