package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aibingo/aibingo-go/internal/api/apierr"
	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/services/auth"
)

type contextKey string

const (
	participantContextKey contextKey = "participant"
	sessionContextKey     contextKey = "session"
)

// Auth creates authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Add session and participant to context
			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, participantContextKey, &session.Participant)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetParticipant returns the authenticated participant from the request context
func GetParticipant(ctx context.Context) *model.Participant {
	participant, _ := ctx.Value(participantContextKey).(*model.Participant)
	return participant
}

// GetSession returns the auth session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// MustGetParticipant returns the authenticated participant or panics
func MustGetParticipant(ctx context.Context) *model.Participant {
	participant := GetParticipant(ctx)
	if participant == nil {
		panic("no participant in context - auth middleware not applied?")
	}
	return participant
}
