package model

import "time"

// ParticipantID uniquely identifies a participant across the system
type ParticipantID string

// Participant represents one authenticated end user.
//
// CardLayout is a permutation of all 20 core component ids, assigned when the
// participant joins a session. BingoLines, BonusPoints and FullCard are
// derived from the completed sets but persisted so the leaderboard can read
// them without recomputing.
type Participant struct {
	ID          ParticipantID
	Email       string
	DisplayName string

	// SessionID is nil when the participant has not joined a session
	SessionID *SessionID

	CardLayout     []string
	CompletedCore  IDSet
	CompletedBonus IDSet
	BingoLines     int
	BonusPoints    int
	FullCard       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InSession reports whether the participant currently belongs to a session
func (p *Participant) InSession() bool {
	return p.SessionID != nil
}
