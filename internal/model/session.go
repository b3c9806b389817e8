package model

import (
	"strings"
	"time"
)

// SessionID uniquely identifies a session
type SessionID string

// SessionCode is a short human-typable identifier for joining sessions
type SessionCode string

// NormalizeSessionCode uppercases a code as typed by a participant
func NormalizeSessionCode(raw string) SessionCode {
	return SessionCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// Session represents a facilitator-run workshop.
//
// The unlocked sets only ever grow for the life of the session; there is no
// re-lock operation.
type Session struct {
	ID               SessionID
	Code             SessionCode
	FacilitatorEmail string

	UnlockedCore  IDSet
	UnlockedBonus IDSet
	BonusEnabled  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFacilitator reports whether the given email owns this session
func (s *Session) IsFacilitator(email string) bool {
	return s.FacilitatorEmail != "" && strings.EqualFold(s.FacilitatorEmail, email)
}
