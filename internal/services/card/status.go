package card

import "github.com/aibingo/aibingo-go/internal/model"

// Status is a participant's state with respect to a single component
type Status string

const (
	StatusLocked    Status = "locked"
	StatusUnlocked  Status = "unlocked"
	StatusCompleted Status = "completed"
)

// ComponentStatus derives the status of one component from the session's
// unlocked set and the participant's completed set. Completion wins over
// unlock; everything else is locked.
func ComponentStatus(id string, unlocked, completed model.IDSet) Status {
	switch {
	case completed.Has(id):
		return StatusCompleted
	case unlocked.Has(id):
		return StatusUnlocked
	default:
		return StatusLocked
	}
}
