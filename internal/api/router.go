package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tondrop/tondrop-go/internal/api/handler"
	"github.com/tondrop/tondrop-go/internal/api/middleware"
	"github.com/tondrop/tondrop-go/internal/dependencies/clock"
	basemw "github.com/tondrop/tondrop-go/internal/middleware"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/services/leaderboard"
	"github.com/tondrop/tondrop-go/internal/services/ledger"
	"github.com/tondrop/tondrop-go/internal/services/referral"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Clock              clock.Clock
	Schedule           epoch.Schedule
	LedgerService      ledger.ServiceInterface
	ReferralService    *referral.Service
	LeaderboardService *leaderboard.Service
	AdminSecretHash    string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.LedgerService, cfg.Clock)
	referralHandler := handler.NewReferralHandler(cfg.ReferralService, cfg.Clock)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.Schedule, cfg.Clock)
	adminHandler := handler.NewAdminHandler(cfg.LedgerService, cfg.Clock)

	// Create middleware
	loggingMiddleware := basemw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	adminAuthMiddleware := middleware.AdminAuth(cfg.AdminSecretHash)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Ledger routes
	api.HandleFunc("/scores", playerHandler.SubmitScore).Methods(http.MethodPost)
	api.HandleFunc("/wallet", playerHandler.SetWallet).Methods(http.MethodPost)
	api.HandleFunc("/boosters", playerHandler.GrantBooster).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}", playerHandler.Get).Methods(http.MethodGet)

	// Referral routes
	api.HandleFunc("/referrals", referralHandler.Register).Methods(http.MethodPost)

	// Ranking routes
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/competition", leaderboardHandler.Competition).Methods(http.MethodGet)

	// Operator routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminAuthMiddleware)
	admin.HandleFunc("/players", adminHandler.ListPlayers).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
