package handler

import (
	"net/http"

	"github.com/tondrop/tondrop-go/internal/api/response"
	"github.com/tondrop/tondrop-go/internal/dependencies/clock"
	"github.com/tondrop/tondrop-go/internal/services/ledger"
)

// AdminHandler handles operator endpoints
type AdminHandler struct {
	ledgerService ledger.ServiceInterface
	clock         clock.Clock
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(ledgerService ledger.ServiceInterface, clk clock.Clock) *AdminHandler {
	return &AdminHandler{
		ledgerService: ledgerService,
		clock:         clk,
	}
}

// ListPlayers handles GET /api/v1/admin/players
func (h *AdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.ledgerService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromModels(players, h.clock.Now()))
}
