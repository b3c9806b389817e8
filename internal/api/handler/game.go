package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aibingo/aibingo-go/internal/api/middleware"
	"github.com/aibingo/aibingo-go/internal/api/request"
	"github.com/aibingo/aibingo-go/internal/api/response"
	"github.com/aibingo/aibingo-go/internal/services/leaderboard"
	"github.com/aibingo/aibingo-go/internal/services/progress"
)

// GameHandler handles participant gameplay endpoints
type GameHandler struct {
	progressController *progress.Controller
	leaderboardService *leaderboard.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(progressController *progress.Controller, leaderboardService *leaderboard.Service) *GameHandler {
	return &GameHandler{
		progressController: progressController,
		leaderboardService: leaderboardService,
	}
}

// GetState handles GET /api/v1/game
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())

	state, err := h.progressController.GetGameState(r.Context(), participant.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(state))
}

// Complete handles POST /api/v1/game/complete
func (h *GameHandler) Complete(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())

	var req request.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.ComponentID == "" {
		WriteError(w, NewInvalidRequestError("component_id is required"))
		return
	}

	result, err := h.progressController.CompleteComponent(r.Context(), participant.ID, req.ComponentID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CompletionResultFromModel(result))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())

	board, err := h.leaderboardService.Compute(r.Context(), participant.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(board))
}

// Catalog handles GET /api/v1/components
func (h *GameHandler) Catalog(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.NewCatalogResponse())
}
