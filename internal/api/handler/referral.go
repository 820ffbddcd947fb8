package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tondrop/tondrop-go/internal/api/request"
	"github.com/tondrop/tondrop-go/internal/api/response"
	"github.com/tondrop/tondrop-go/internal/dependencies/clock"
	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/services/referral"
)

// ReferralHandler handles referral registration
type ReferralHandler struct {
	referralService *referral.Service
	clock           clock.Clock
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralService *referral.Service, clk clock.Clock) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
		clock:           clk,
	}
}

// Register handles POST /api/v1/referrals
func (h *ReferralHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Referrer == "" {
		WriteError(w, NewInvalidRequestError("referrer is required"))
		return
	}

	outcome, err := h.referralService.Register(r.Context(), model.PlayerID(req.PlayerID), req.Username, req.Referrer)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ReferralResultFromOutcome(outcome, h.clock.Now()))
}
