package request

// SubmitScoreRequest is the request body for submitting a tap score
type SubmitScoreRequest struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username,omitempty"`
	Score    int64  `json:"score"`
}

// SetWalletRequest is the request body for attaching a wallet address
type SetWalletRequest struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username,omitempty"`
	Wallet   string `json:"wallet"`
}

// GrantBoosterRequest is the request body for activating a booster
type GrantBoosterRequest struct {
	PlayerID string `json:"player_id"`
}

// RegisterReferralRequest is the request body for registering a referral
type RegisterReferralRequest struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username,omitempty"`
	Referrer string `json:"referrer"`
}
