package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aibingo/aibingo-go/internal/api/middleware"
	"github.com/aibingo/aibingo-go/internal/api/request"
	"github.com/aibingo/aibingo-go/internal/api/response"
	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/services/session"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionController *session.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionController *session.Controller) *SessionHandler {
	return &SessionHandler{
		sessionController: sessionController,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())

	sess, err := h.sessionController.CreateSession(r.Context(), participant.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(sess))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.sessionController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Join handles POST /api/v1/sessions/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())

	var req request.JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	sess, err := h.sessionController.JoinSession(r.Context(), req.Code, participant.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// State handles GET /api/v1/sessions/{id}/state
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	state, err := h.sessionController.SessionState(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	// The roster view is facilitator-only
	if !state.Session.IsFacilitator(participant.Email) {
		WriteError(w, model.ErrNotFacilitator)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionStateFromModel(state))
}

// Unlock handles POST /api/v1/sessions/{id}/unlock/{component_id}
func (h *SessionHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	vars := mux.Vars(r)
	id := model.SessionID(vars["id"])
	componentID := vars["component_id"]

	if err := h.sessionController.UnlockComponent(r.Context(), id, componentID, participant.Email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SetBonus handles PATCH /api/v1/sessions/{id}/bonus
func (h *SessionHandler) SetBonus(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.SetBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.sessionController.SetBonusEnabled(r.Context(), id, req.Enabled, participant.Email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Terminate handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Terminate(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	if err := h.sessionController.TerminateSession(r.Context(), id, participant.Email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
