package model

import (
	"errors"
	"fmt"
	"time"
)

// Common errors used across the application
var (
	// Participant errors
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNotInSession        = errors.New("participant is not in a session")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNotFacilitator  = errors.New("participant is not the session facilitator")

	// Component errors
	ErrComponentNotFound = errors.New("component not found")
	ErrComponentLocked   = errors.New("component has not been unlocked")
	ErrBonusNotEnabled   = errors.New("bonus round is not enabled")
	ErrBonusGateNotMet   = errors.New("bonus requires at least half the core card")

	// Rate limiting
	ErrRateLimited = errors.New("rate limited")
)

// RateLimitError reports a denied action along with how long to wait.
// It matches ErrRateLimited under errors.Is.
type RateLimitError struct {
	Action     string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: retry %s in %s", e.Action, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}
