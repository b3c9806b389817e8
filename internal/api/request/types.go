package request

// LoginRequest is the request body for requesting a magic link
type LoginRequest struct {
	Email string `json:"email"`
}

// VerifyRequest is the request body for verifying a magic-link token
type VerifyRequest struct {
	Token string `json:"token"`
}

// JoinSessionRequest is the request body for joining a session by code
type JoinSessionRequest struct {
	Code string `json:"code"`
}

// SetBonusRequest is the request body for toggling the bonus round
type SetBonusRequest struct {
	Enabled bool `json:"enabled"`
}

// CompleteRequest is the request body for completing a component
type CompleteRequest struct {
	ComponentID string `json:"component_id"`
}
