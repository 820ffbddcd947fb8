package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tondrop/tondrop-go/internal/api/request"
	"github.com/tondrop/tondrop-go/internal/api/response"
	"github.com/tondrop/tondrop-go/internal/dependencies/clock"
	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/services/ledger"
)

// PlayerHandler handles player ledger endpoints
type PlayerHandler struct {
	ledgerService ledger.ServiceInterface
	clock         clock.Clock
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(ledgerService ledger.ServiceInterface, clk clock.Clock) *PlayerHandler {
	return &PlayerHandler{
		ledgerService: ledgerService,
		clock:         clk,
	}
}

// SubmitScore handles POST /api/v1/scores
func (h *PlayerHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	player, err := h.ledgerService.SubmitScore(r.Context(), model.PlayerID(req.PlayerID), req.Username, req.Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player, h.clock.Now()))
}

// SetWallet handles POST /api/v1/wallet
func (h *PlayerHandler) SetWallet(w http.ResponseWriter, r *http.Request) {
	var req request.SetWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Wallet == "" {
		WriteError(w, NewInvalidRequestError("wallet is required"))
		return
	}

	player, err := h.ledgerService.SetWallet(r.Context(), model.PlayerID(req.PlayerID), req.Username, req.Wallet)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player, h.clock.Now()))
}

// GrantBooster handles POST /api/v1/boosters
func (h *PlayerHandler) GrantBooster(w http.ResponseWriter, r *http.Request) {
	var req request.GrantBoosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	player, err := h.ledgerService.GrantBooster(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player, h.clock.Now()))
}

// Get handles GET /api/v1/players/{player_id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["player_id"]
	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	player, err := h.ledgerService.Get(r.Context(), model.PlayerID(playerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player, h.clock.Now()))
}
