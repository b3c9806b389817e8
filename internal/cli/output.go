package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Participant:
		o.printParticipant(v)
	case AuthResult:
		o.printAuthResult(v)
	case Session:
		o.printSession(v)
	case SessionState:
		o.printSessionState(v)
	case GameState:
		o.printGameState(v)
	case CompletionResult:
		o.printCompletionResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Catalog:
		o.printCatalog(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Participant response type (matches API)
type Participant struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	InSession   bool   `json:"in_session"`
}

// AuthResult combines participant and token
type AuthResult struct {
	Participant  Participant `json:"participant"`
	SessionToken string      `json:"session_token"`
}

// Session response type
type Session struct {
	ID               string   `json:"id"`
	Code             string   `json:"code"`
	FacilitatorEmail string   `json:"facilitator_email"`
	UnlockedCore     []string `json:"unlocked_core"`
	UnlockedBonus    []string `json:"unlocked_bonus"`
	BonusEnabled     bool     `json:"bonus_enabled"`
}

// RosterEntry response type
type RosterEntry struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	CompletedCore  int    `json:"completed_core"`
	CompletedBonus int    `json:"completed_bonus"`
	BingoLines     int    `json:"bingo_lines"`
	BonusPoints    int    `json:"bonus_points"`
	FullCard       bool   `json:"full_card"`
}

// SessionState response type
type SessionState struct {
	Session Session       `json:"session"`
	Roster  []RosterEntry `json:"roster"`
}

// GameState response type
type GameState struct {
	Participant Participant       `json:"participant"`
	Session     *Session          `json:"session"`
	CardLayout  []string          `json:"card_layout"`
	Statuses    map[string]string `json:"statuses"`
	BingoLines  int               `json:"bingo_lines"`
	BonusPoints int               `json:"bonus_points"`
	FullCard    bool              `json:"full_card"`
}

// CompletionResult response type
type CompletionResult struct {
	Tier string `json:"tier"`
	Core *struct {
		BingoLines     int  `json:"bingo_lines"`
		CompletedCount int  `json:"completed_count"`
		FullCard       bool `json:"full_card"`
	} `json:"core"`
	Bonus *struct {
		BonusPoints    int `json:"bonus_points"`
		CompletedCount int `json:"completed_count"`
	} `json:"bonus"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	BingoLines  int    `json:"bingo_lines"`
	BonusPoints int    `json:"bonus_points"`
	FullCard    bool   `json:"full_card"`
}

// Leaderboard response type
type Leaderboard struct {
	SessionCode string             `json:"session_code"`
	Entries     []LeaderboardEntry `json:"entries"`
}

// Component response type
type Component struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Period      string `json:"period"`
	Family      string `json:"family"`
	Tier        string `json:"tier"`
	Description string `json:"description"`
	BonusPoints int    `json:"bonus_points"`
}

// Catalog response type
type Catalog struct {
	Grid struct {
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	} `json:"grid"`
	Components []Component `json:"components"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printParticipant(p Participant) {
	fmt.Printf("Participant: %s (%s)\n", p.DisplayName, p.Email)
	if p.InSession {
		fmt.Println("In session: yes")
	} else {
		fmt.Println("In session: no")
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printParticipant(a.Participant)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.Code)
	fmt.Printf("Facilitator: %s\n", s.FacilitatorEmail)
	fmt.Printf("Unlocked: %d core, %d bonus\n", len(s.UnlockedCore), len(s.UnlockedBonus))
	if s.BonusEnabled {
		fmt.Println("Bonus round: open")
	} else {
		fmt.Println("Bonus round: closed")
	}
}

func (o *Output) printSessionState(s SessionState) {
	o.printSession(s.Session)
	fmt.Printf("Participants (%d):\n", len(s.Roster))
	for _, r := range s.Roster {
		full := ""
		if r.FullCard {
			full = " [full card]"
		}
		fmt.Printf("  - %s: %d/20 core, %d lines, %d bonus pts%s\n",
			r.DisplayName, r.CompletedCore, r.BingoLines, r.BonusPoints, full)
	}
}

func (o *Output) printGameState(g GameState) {
	if g.Session != nil {
		fmt.Printf("Session: %s\n", g.Session.Code)
	} else {
		fmt.Println("Session: none")
	}
	fmt.Printf("Bingo lines: %d\n", g.BingoLines)
	fmt.Printf("Bonus points: %d\n", g.BonusPoints)
	if g.FullCard {
		fmt.Println("Full card!")
	}

	if len(g.CardLayout) > 0 {
		fmt.Println("\nYour card:")
		o.printCard(g.CardLayout, g.Statuses)
	}
}

// printCard renders the 5-wide card grid with one status marker per cell
func (o *Output) printCard(layout []string, statuses map[string]string) {
	const cols = 5
	for i, id := range layout {
		marker := " "
		switch statuses[id] {
		case "completed":
			marker = "x"
		case "unlocked":
			marker = "o"
		}
		fmt.Printf("  [%s] %-20s", marker, id)
		if (i+1)%cols == 0 {
			fmt.Println()
		}
	}
	if len(layout)%cols != 0 {
		fmt.Println()
	}
}

func (o *Output) printCompletionResult(r CompletionResult) {
	if r.Core != nil {
		fmt.Printf("Completed! %d core done, %d bingo lines\n", r.Core.CompletedCount, r.Core.BingoLines)
		if r.Core.FullCard {
			fmt.Println("Full card!")
		}
	}
	if r.Bonus != nil {
		fmt.Printf("Bonus completed! %d bonus done, %d points\n", r.Bonus.CompletedCount, r.Bonus.BonusPoints)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if l.SessionCode != "" {
		fmt.Printf("Leaderboard for session %s:\n", l.SessionCode)
	} else {
		fmt.Println("Leaderboard: (no session)")
	}
	for _, e := range l.Entries {
		full := ""
		if e.FullCard {
			full = " [full card]"
		}
		fmt.Printf("  %2d. %-24s %d lines, %d core, %d bonus pts%s\n",
			e.Rank, e.Name, e.BingoLines, e.Score, e.BonusPoints, full)
	}
}

func (o *Output) printCatalog(c Catalog) {
	fmt.Printf("Card grid: %dx%d\n", c.Grid.Rows, c.Grid.Cols)
	for _, comp := range c.Components {
		if comp.Tier == "bonus" {
			fmt.Printf("  %-20s %-10s [bonus, %d pts] %s\n", comp.ID, comp.Period, comp.BonusPoints, comp.Name)
		} else {
			fmt.Printf("  %-20s %-10s %s\n", comp.ID, comp.Period, comp.Name)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
