package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aibingo/aibingo-go/internal/api/middleware"
	"github.com/aibingo/aibingo-go/internal/api/request"
	"github.com/aibingo/aibingo-go/internal/api/response"
	"github.com/aibingo/aibingo-go/internal/services/auth"
)

// AuthHandler handles login and session endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}

	if err := h.authService.RequestLogin(r.Context(), req.Email); err != nil {
		WriteError(w, err)
		return
	}

	// Always a flat acknowledgement; whether the address is known is not
	// revealed to the caller
	response.JSON(w, http.StatusAccepted, map[string]string{"status": "login link sent"})
}

// Verify handles POST /api/v1/auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Token == "" {
		WriteError(w, NewInvalidRequestError("token is required"))
		return
	}

	session, err := h.authService.VerifyLogin(r.Context(), req.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/participants/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	response.JSON(w, http.StatusOK, response.ParticipantFromModel(participant))
}
