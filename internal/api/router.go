package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aibingo/aibingo-go/internal/api/handler"
	"github.com/aibingo/aibingo-go/internal/api/middleware"
	"github.com/aibingo/aibingo-go/internal/services/auth"
	"github.com/aibingo/aibingo-go/internal/services/leaderboard"
	"github.com/aibingo/aibingo-go/internal/services/progress"
	"github.com/aibingo/aibingo-go/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	SessionController  *session.Controller
	ProgressController *progress.Controller
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController)
	gameHandler := handler.NewGameHandler(cfg.ProgressController, cfg.LeaderboardService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for requesting/verifying login links)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", authHandler.Verify).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Participant routes
	participants := api.PathPrefix("/participants").Subrouter()
	participants.Use(authMiddleware)
	participants.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/join", sessionHandler.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Terminate).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/state", sessionHandler.State).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/unlock/{component_id}", sessionHandler.Unlock).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/bonus", sessionHandler.SetBonus).Methods(http.MethodPatch)

	// Gameplay routes (all require auth)
	game := api.PathPrefix("/game").Subrouter()
	game.Use(authMiddleware)
	game.HandleFunc("", gameHandler.GetState).Methods(http.MethodGet)
	game.HandleFunc("/complete", gameHandler.Complete).Methods(http.MethodPost)

	leaderboardRoute := api.PathPrefix("/leaderboard").Subrouter()
	leaderboardRoute.Use(authMiddleware)
	leaderboardRoute.HandleFunc("", gameHandler.Leaderboard).Methods(http.MethodGet)

	// Catalog is public; it is static configuration
	api.HandleFunc("/components", gameHandler.Catalog).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
