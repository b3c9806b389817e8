package redis

import (
	"strings"
	"time"

	"github.com/aibingo/aibingo-go/internal/model"
)

// Persisted record shapes. Sets cross the persistence boundary as
// comma-joined strings; the empty string is the empty set.

type participantRecord struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`

	SessionID string `json:"session_id,omitempty"`

	CardLayout     string `json:"card_layout"`
	CompletedCore  string `json:"completed_core"`
	CompletedBonus string `json:"completed_bonus"`
	BingoLines     int    `json:"bingo_lines"`
	BonusPoints    int    `json:"bonus_points"`
	FullCard       bool   `json:"full_card"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func participantToRecord(p *model.Participant) participantRecord {
	rec := participantRecord{
		ID:             string(p.ID),
		Email:          p.Email,
		DisplayName:    p.DisplayName,
		CardLayout:     strings.Join(p.CardLayout, ","),
		CompletedCore:  model.JoinIDs(p.CompletedCore),
		CompletedBonus: model.JoinIDs(p.CompletedBonus),
		BingoLines:     p.BingoLines,
		BonusPoints:    p.BonusPoints,
		FullCard:       p.FullCard,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.SessionID != nil {
		rec.SessionID = string(*p.SessionID)
	}
	return rec
}

func participantFromRecord(rec participantRecord) *model.Participant {
	p := &model.Participant{
		ID:             model.ParticipantID(rec.ID),
		Email:          rec.Email,
		DisplayName:    rec.DisplayName,
		CompletedCore:  model.ParseIDs(rec.CompletedCore),
		CompletedBonus: model.ParseIDs(rec.CompletedBonus),
		BingoLines:     rec.BingoLines,
		BonusPoints:    rec.BonusPoints,
		FullCard:       rec.FullCard,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.SessionID != "" {
		id := model.SessionID(rec.SessionID)
		p.SessionID = &id
	}
	if rec.CardLayout != "" {
		p.CardLayout = strings.Split(rec.CardLayout, ",")
	}
	return p
}

type sessionRecord struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	FacilitatorEmail string `json:"facilitator_email"`

	UnlockedCore  string `json:"unlocked_core"`
	UnlockedBonus string `json:"unlocked_bonus"`
	BonusEnabled  bool   `json:"bonus_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func sessionToRecord(s *model.Session) sessionRecord {
	return sessionRecord{
		ID:               string(s.ID),
		Code:             string(s.Code),
		FacilitatorEmail: s.FacilitatorEmail,
		UnlockedCore:     model.JoinIDs(s.UnlockedCore),
		UnlockedBonus:    model.JoinIDs(s.UnlockedBonus),
		BonusEnabled:     s.BonusEnabled,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func sessionFromRecord(rec sessionRecord) *model.Session {
	return &model.Session{
		ID:               model.SessionID(rec.ID),
		Code:             model.SessionCode(rec.Code),
		FacilitatorEmail: rec.FacilitatorEmail,
		UnlockedCore:     model.ParseIDs(rec.UnlockedCore),
		UnlockedBonus:    model.ParseIDs(rec.UnlockedBonus),
		BonusEnabled:     rec.BonusEnabled,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}
