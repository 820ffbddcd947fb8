package handler

import (
	"net/http"
	"strconv"

	"github.com/tondrop/tondrop-go/internal/api/response"
	"github.com/tondrop/tondrop-go/internal/dependencies/clock"
	"github.com/tondrop/tondrop-go/internal/model"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/services/leaderboard"
)

const defaultLeaderboardLimit = 10

// LeaderboardHandler handles ranking and competition window endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
	schedule           epoch.Schedule
	clock              clock.Clock
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service, schedule epoch.Schedule, clk clock.Clock) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		schedule:           schedule,
		clock:              clk,
	}
}

// Get handles GET /api/v1/leaderboard?field=total|competition&limit=N
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	field, err := model.ParseScoreField(r.URL.Query().Get("field"))
	if err != nil {
		WriteError(w, err)
		return
	}

	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			WriteError(w, NewInvalidRequestError("limit must be an integer"))
			return
		}
	}

	entries, err := h.leaderboardService.Top(r.Context(), field, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(field, entries))
}

// Competition handles GET /api/v1/competition
func (h *LeaderboardHandler) Competition(w http.ResponseWriter, r *http.Request) {
	status := h.schedule.StatusAt(h.clock.Now())
	response.JSON(w, http.StatusOK, response.CompetitionStatusFromSchedule(status))
}
