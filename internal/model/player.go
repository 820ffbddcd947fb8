package model

import "time"

// PlayerID uniquely identifies a player across the system.
// IDs are opaque, caller-supplied and stable (e.g. a chat platform user id).
type PlayerID string

// Player is the ledger record for a single participant
type Player struct {
	ID       PlayerID
	Username string // display name, last write wins
	Wallet   string // payout address, last write wins

	TotalScore       int64
	CompetitionScore int64
	// EpochStart is the competition window that owns CompetitionScore.
	// When it differs from the currently computed window the score is stale
	// and reads as zero until the next write catches the record up.
	EpochStart time.Time

	BoosterExpiry *time.Time

	ReferredBy string // referrer username, write-once
	Referrals  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPlayer returns a zero-valued player record. EpochStart is left at the
// zero time so the first epoch-score write rolls the record into whatever
// window is current.
func NewPlayer(id PlayerID, username string, now time.Time) *Player {
	return &Player{
		ID:        id,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RollEpoch moves the record into the given epoch window, zeroing the
// epoch score if the stored window is stale. Idempotent.
func (p *Player) RollEpoch(epochStart time.Time) {
	if !p.EpochStart.Equal(epochStart) {
		p.CompetitionScore = 0
		p.EpochStart = epochStart
	}
}

// Credit adds amount to both score fields, rolling the record into the
// given epoch window first
func (p *Player) Credit(amount int64, epochStart, now time.Time) {
	p.RollEpoch(epochStart)
	p.TotalScore += amount
	p.CompetitionScore += amount
	p.UpdatedAt = now
}

// BoosterActive reports whether the player's booster window covers now
func (p *Player) BoosterActive(now time.Time) bool {
	return p.BoosterExpiry != nil && now.Before(*p.BoosterExpiry)
}

// CompetitionScoreAt returns the epoch score as of the given window start,
// treating a record from an older window as zero
func (p *Player) CompetitionScoreAt(epochStart time.Time) int64 {
	if !p.EpochStart.Equal(epochStart) {
		return 0
	}
	return p.CompetitionScore
}
