package response

import (
	"time"

	"github.com/aibingo/aibingo-go/internal/catalog"
	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/services/auth"
	"github.com/aibingo/aibingo-go/internal/services/card"
	"github.com/aibingo/aibingo-go/internal/services/leaderboard"
	"github.com/aibingo/aibingo-go/internal/services/progress"
	"github.com/aibingo/aibingo-go/internal/services/session"
)

// Participant represents a participant in API responses
type Participant struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	InSession   bool   `json:"in_session"`
}

// ParticipantFromModel converts a model.Participant to a response Participant
func ParticipantFromModel(p *model.Participant) Participant {
	return Participant{
		ID:          string(p.ID),
		Email:       p.Email,
		DisplayName: p.DisplayName,
		InSession:   p.InSession(),
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Participant  Participant `json:"participant"`
	SessionToken string      `json:"session_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from an auth session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Participant:  ParticipantFromModel(&s.Participant),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Session represents a game session in API responses
type Session struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	FacilitatorEmail string    `json:"facilitator_email"`
	UnlockedCore     []string  `json:"unlocked_core"`
	UnlockedBonus    []string  `json:"unlocked_bonus"`
	BonusEnabled     bool      `json:"bonus_enabled"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	return Session{
		ID:               string(s.ID),
		Code:             string(s.Code),
		FacilitatorEmail: s.FacilitatorEmail,
		UnlockedCore:     s.UnlockedCore.Values(),
		UnlockedBonus:    s.UnlockedBonus.Values(),
		BonusEnabled:     s.BonusEnabled,
		CreatedAt:        s.CreatedAt,
	}
}

// RosterEntry is one participant row in a facilitator's session view
type RosterEntry struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	CompletedCore  int    `json:"completed_core"`
	CompletedBonus int    `json:"completed_bonus"`
	BingoLines     int    `json:"bingo_lines"`
	BonusPoints    int    `json:"bonus_points"`
	FullCard       bool   `json:"full_card"`
}

// SessionState is the facilitator dashboard view of a session
type SessionState struct {
	Session Session       `json:"session"`
	Roster  []RosterEntry `json:"roster"`
}

// SessionStateFromModel converts a session.State
func SessionStateFromModel(st *session.State) SessionState {
	roster := make([]RosterEntry, len(st.Participants))
	for i, p := range st.Participants {
		roster[i] = RosterEntry{
			ID:             string(p.ID),
			DisplayName:    p.DisplayName,
			CompletedCore:  p.CompletedCore.Len(),
			CompletedBonus: p.CompletedBonus.Len(),
			BingoLines:     p.BingoLines,
			BonusPoints:    p.BonusPoints,
			FullCard:       p.FullCard,
		}
	}
	return SessionState{
		Session: SessionFromModel(st.Session),
		Roster:  roster,
	}
}

// Component represents a catalog entry in API responses
type Component struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Period      string `json:"period"`
	Family      string `json:"family"`
	Tier        string `json:"tier"`
	Description string `json:"description"`
	BonusPoints int    `json:"bonus_points,omitempty"`
}

// ComponentFromCatalog converts a catalog.Component
func ComponentFromCatalog(c catalog.Component) Component {
	return Component{
		ID:          c.ID,
		Name:        c.Name,
		Period:      string(c.Period),
		Family:      string(c.Family),
		Tier:        string(c.Tier),
		Description: c.Description,
		BonusPoints: c.BonusPoints,
	}
}

// GameState is a participant's view of their game
type GameState struct {
	Participant Participant       `json:"participant"`
	Session     *Session          `json:"session"`
	CardLayout  []string          `json:"card_layout"`
	Statuses    map[string]string `json:"statuses"`
	BingoLines  int               `json:"bingo_lines"`
	BonusPoints int               `json:"bonus_points"`
	FullCard    bool              `json:"full_card"`
}

// GameStateFromModel converts a progress.GameState
func GameStateFromModel(gs *progress.GameState) GameState {
	statuses := make(map[string]string, len(gs.Statuses))
	for id, status := range gs.Statuses {
		statuses[id] = string(status)
	}

	var sess *Session
	if gs.Session != nil {
		s := SessionFromModel(gs.Session)
		sess = &s
	}

	return GameState{
		Participant: ParticipantFromModel(gs.Participant),
		Session:     sess,
		CardLayout:  gs.Participant.CardLayout,
		Statuses:    statuses,
		BingoLines:  gs.Participant.BingoLines,
		BonusPoints: gs.Participant.BonusPoints,
		FullCard:    gs.Participant.FullCard,
	}
}

// CoreCompletion is the core part of a completion response
type CoreCompletion struct {
	BingoLines     int  `json:"bingo_lines"`
	CompletedCount int  `json:"completed_count"`
	FullCard       bool `json:"full_card"`
}

// BonusCompletion is the bonus part of a completion response
type BonusCompletion struct {
	BonusPoints    int `json:"bonus_points"`
	CompletedCount int `json:"completed_count"`
}

// CompletionResult is the response after completing a component
type CompletionResult struct {
	Tier  string           `json:"tier"`
	Core  *CoreCompletion  `json:"core,omitempty"`
	Bonus *BonusCompletion `json:"bonus,omitempty"`
}

// CompletionResultFromModel converts a progress.Result
func CompletionResultFromModel(r *progress.Result) CompletionResult {
	out := CompletionResult{Tier: string(r.Tier)}
	if r.Core != nil {
		out.Core = &CoreCompletion{
			BingoLines:     r.Core.BingoLines,
			CompletedCount: r.Core.CompletedCount,
			FullCard:       r.Core.FullCard,
		}
	}
	if r.Bonus != nil {
		out.Bonus = &BonusCompletion{
			BonusPoints:    r.Bonus.BonusPoints,
			CompletedCount: r.Bonus.CompletedCount,
		}
	}
	return out
}

// LeaderboardEntry is one ranked leaderboard row
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	BingoLines  int    `json:"bingo_lines"`
	BonusPoints int    `json:"bonus_points"`
	FullCard    bool   `json:"full_card"`
}

// Leaderboard is the leaderboard response
type Leaderboard struct {
	SessionCode string             `json:"session_code,omitempty"`
	Entries     []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts a leaderboard.Board
func LeaderboardFromModel(b *leaderboard.Board) Leaderboard {
	entries := make([]LeaderboardEntry, len(b.Entries))
	for i, e := range b.Entries {
		entries[i] = LeaderboardEntry{
			Rank:        e.Rank,
			Name:        e.Name,
			Score:       e.Score,
			BingoLines:  e.BingoLines,
			BonusPoints: e.BonusPoints,
			FullCard:    e.FullCard,
		}
	}
	return Leaderboard{
		SessionCode: string(b.SessionCode),
		Entries:     entries,
	}
}

// CardGrid describes the fixed card shape so clients can lay out the grid
type CardGrid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// CatalogResponse is the full component catalog with the card shape
type CatalogResponse struct {
	Grid       CardGrid    `json:"grid"`
	Components []Component `json:"components"`
}

// NewCatalogResponse builds the catalog response
func NewCatalogResponse() CatalogResponse {
	all := catalog.All()
	components := make([]Component, len(all))
	for i, c := range all {
		components[i] = ComponentFromCatalog(c)
	}
	return CatalogResponse{
		Grid:       CardGrid{Rows: card.GridRows, Cols: card.GridCols},
		Components: components,
	}
}
