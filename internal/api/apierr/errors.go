package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidEmail        = "INVALID_EMAIL"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotFacilitator      = "NOT_FACILITATOR"
	CodeParticipantNotFound = "PARTICIPANT_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeNotInSession        = "NOT_IN_SESSION"
	CodeComponentNotFound   = "COMPONENT_NOT_FOUND"
	CodeComponentLocked     = "COMPONENT_LOCKED"
	CodeBonusNotEnabled     = "BONUS_NOT_ENABLED"
	CodeBonusGateNotMet     = "BONUS_GATE_NOT_MET"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer. Rate limit
// errors additionally carry a Retry-After header.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")

	var rle *model.RateLimitError
	if errors.As(err, &rle) {
		seconds := int(rle.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrParticipantNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeParticipantNotFound, "Participant not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrNotInSession):
		return &httpError{http.StatusConflict, APIError{CodeNotInSession, "Not in a session"}}
	case errors.Is(err, model.ErrNotFacilitator):
		return &httpError{http.StatusForbidden, APIError{CodeNotFacilitator, "Only the facilitator can perform this action"}}
	case errors.Is(err, model.ErrComponentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeComponentNotFound, "Component not found"}}
	case errors.Is(err, model.ErrComponentLocked):
		return &httpError{http.StatusForbidden, APIError{CodeComponentLocked, "Component has not been unlocked"}}
	case errors.Is(err, model.ErrBonusNotEnabled):
		return &httpError{http.StatusConflict, APIError{CodeBonusNotEnabled, "Bonus round is not enabled"}}
	case errors.Is(err, model.ErrBonusGateNotMet):
		return &httpError{http.StatusConflict, APIError{CodeBonusGateNotMet, "Complete more core components to unlock bonus challenges"}}
	case errors.Is(err, model.ErrRateLimited):
		return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests, slow down"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidEmail):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidEmail, "Invalid email address"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidToken, "Invalid or expired login token"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
