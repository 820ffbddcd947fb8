package response

import (
	"time"

	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/services/leaderboard"
	"github.com/tondrop/tondrop-go/internal/services/referral"
)

// Player represents a player in API responses
type Player struct {
	ID               string     `json:"id"`
	Username         string     `json:"username,omitempty"`
	Wallet           string     `json:"wallet,omitempty"`
	TotalScore       int64      `json:"total_score"`
	CompetitionScore int64      `json:"competition_score"`
	BoosterActive    bool       `json:"booster_active"`
	BoosterExpiresAt *time.Time `json:"booster_expires_at,omitempty"`
	ReferredBy       string     `json:"referred_by,omitempty"`
	Referrals        int        `json:"referrals"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player, now time.Time) Player {
	resp := Player{
		ID:               string(p.ID),
		Username:         p.Username,
		Wallet:           p.Wallet,
		TotalScore:       p.TotalScore,
		CompetitionScore: p.CompetitionScore,
		BoosterActive:    p.BoosterActive(now),
		ReferredBy:       p.ReferredBy,
		Referrals:        p.Referrals,
		CreatedAt:        p.CreatedAt,
	}
	if p.BoosterExpiry != nil && resp.BoosterActive {
		resp.BoosterExpiresAt = p.BoosterExpiry
	}
	return resp
}

// LeaderboardEntry represents one ranked player
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Username string `json:"username,omitempty"`
	Score    int64  `json:"score"`
}

// LeaderboardResponse is the response for leaderboard queries
type LeaderboardResponse struct {
	Field   string             `json:"field"`
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromEntries converts ranked entries to a response
func LeaderboardFromEntries(field model.ScoreField, entries []leaderboard.Entry) LeaderboardResponse {
	resp := LeaderboardResponse{
		Field:   string(field),
		Entries: make([]LeaderboardEntry, 0, len(entries)),
	}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, LeaderboardEntry{
			Rank:     i + 1,
			PlayerID: string(e.PlayerID),
			Username: e.Username,
			Score:    e.Value,
		})
	}
	return resp
}

// CompetitionStatus is the response for the current competition window
type CompetitionStatus struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DaysRemaining int       `json:"days_remaining"`
}

// CompetitionStatusFromSchedule converts an epoch status to a response
func CompetitionStatusFromSchedule(s epoch.Status) CompetitionStatus {
	return CompetitionStatus{
		Start:         s.Start,
		End:           s.End,
		DaysRemaining: s.DaysRemaining,
	}
}

// ReferralResult is the response for a successful referral registration
type ReferralResult struct {
	Referee  Player `json:"referee"`
	Referrer Player `json:"referrer"`
}

// ReferralResultFromOutcome converts a referral outcome to a response
func ReferralResultFromOutcome(o *referral.Outcome, now time.Time) ReferralResult {
	return ReferralResult{
		Referee:  PlayerFromModel(o.Referee, now),
		Referrer: PlayerFromModel(o.Referrer, now),
	}
}

// PlayerList is the response for the admin player listing
type PlayerList struct {
	Players []Player `json:"players"`
	Count   int      `json:"count"`
}

// PlayerListFromModels converts players to a list response
func PlayerListFromModels(players []*model.Player, now time.Time) PlayerList {
	list := PlayerList{Players: make([]Player, 0, len(players))}
	for _, p := range players {
		list.Players = append(list.Players, PlayerFromModel(p, now))
	}
	list.Count = len(list.Players)
	return list
}
