package storage

import (
	"context"

	"github.com/aibingo/aibingo-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations must provide read-modify-write atomicity per record at the
// level of a single Save call; controllers read, merge and write whole
// records rather than patching fields blind.
type Storage interface {
	// Participant operations
	SaveParticipant(ctx context.Context, p *model.Participant) error
	GetParticipant(ctx context.Context, id model.ParticipantID) (*model.Participant, error)
	GetParticipantByEmail(ctx context.Context, email string) (*model.Participant, error)
	ListParticipantsInSession(ctx context.Context, sessionID model.SessionID) ([]*model.Participant, error)

	// Session operations
	SaveSession(ctx context.Context, s *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error)
	SessionCodeExists(ctx context.Context, code model.SessionCode) (bool, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// FindFacilitatorSession returns the most recently created session owned
	// by the given facilitator email, or model.ErrSessionNotFound
	FindFacilitatorSession(ctx context.Context, email string) (*model.Session, error)
}
