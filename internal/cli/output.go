package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case ReferralResult:
		o.printReferralResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case CompetitionStatus:
		o.printCompetitionStatus(v)
	case PlayerList:
		o.printPlayerList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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
}

// ReferralResult response type
type ReferralResult struct {
	Referee  Player `json:"referee"`
	Referrer Player `json:"referrer"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Username string `json:"username,omitempty"`
	Score    int64  `json:"score"`
}

// Leaderboard response type
type Leaderboard struct {
	Field   string             `json:"field"`
	Entries []LeaderboardEntry `json:"entries"`
}

// CompetitionStatus response type
type CompetitionStatus struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DaysRemaining int       `json:"days_remaining"`
}

// PlayerList response type
type PlayerList struct {
	Players []Player `json:"players"`
	Count   int      `json:"count"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	name := p.Username
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("Player: %s (%s)\n", name, p.ID)
	fmt.Printf("Total Score: %d\n", p.TotalScore)
	fmt.Printf("Competition Score: %d\n", p.CompetitionScore)
	if p.Wallet != "" {
		fmt.Printf("Wallet: %s\n", p.Wallet)
	}
	boosterStr := "no"
	if p.BoosterActive {
		boosterStr = "yes"
		if p.BoosterExpiresAt != nil {
			boosterStr = fmt.Sprintf("yes, until %s", p.BoosterExpiresAt.Format(time.RFC3339))
		}
	}
	fmt.Printf("Booster: %s\n", boosterStr)
	if p.ReferredBy != "" {
		fmt.Printf("Referred By: %s\n", p.ReferredBy)
	}
	fmt.Printf("Referrals: %d\n", p.Referrals)
}

func (o *Output) printReferralResult(r ReferralResult) {
	fmt.Println("Referee:")
	o.printPlayer(r.Referee)
	fmt.Println("\nReferrer:")
	o.printPlayer(r.Referrer)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%s):\n", l.Field)
	if len(l.Entries) == 0 {
		fmt.Println("  (empty)")
		return
	}
	for _, e := range l.Entries {
		name := e.Username
		if name == "" {
			name = e.PlayerID
		}
		fmt.Printf("  %d. %s - %d\n", e.Rank, name, e.Score)
	}
}

func (o *Output) printCompetitionStatus(c CompetitionStatus) {
	fmt.Printf("Competition Window: %s to %s\n", c.Start.Format(time.RFC3339), c.End.Format(time.RFC3339))
	fmt.Printf("Days Remaining: %d\n", c.DaysRemaining)
}

func (o *Output) printPlayerList(l PlayerList) {
	fmt.Printf("Players (%d):\n", l.Count)
	for _, p := range l.Players {
		name := p.Username
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  - %s (%s): total=%d competition=%d referrals=%d\n",
			name, p.ID, p.TotalScore, p.CompetitionScore, p.Referrals)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
