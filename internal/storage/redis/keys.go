package redis

import (
	"fmt"
	"time"

	"github.com/tondrop/tondrop-go/internal/model"
)

// Key prefix for all ledger data
const keyPrefix = "tondrop"

// playerKey returns the Redis key for a Player record
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// playersIndexKey returns the Redis key for the SET of all player IDs
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// totalRankKey returns the Redis key for the all-time score ranking ZSET
func totalRankKey() string {
	return fmt.Sprintf("%s:rank:total", keyPrefix)
}

// competitionRankKey returns the Redis key for one epoch window's ranking
// ZSET. Keying by window start means a new epoch naturally starts from an
// empty ranking and stale windows age out via TTL.
func competitionRankKey(epochStart time.Time) string {
	return fmt.Sprintf("%s:rank:competition:%d", keyPrefix, epochStart.Unix())
}
