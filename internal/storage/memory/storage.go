package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	participants map[model.ParticipantID]*model.Participant
	emailIndex   map[string]model.ParticipantID
	sessions     map[model.SessionID]*model.Session
	codeIndex    map[model.SessionCode]model.SessionID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		participants: make(map[model.ParticipantID]*model.Participant),
		emailIndex:   make(map[string]model.ParticipantID),
		sessions:     make(map[model.SessionID]*model.Session),
		codeIndex:    make(map[model.SessionCode]model.SessionID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) SaveParticipant(ctx context.Context, p *model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[p.ID] = p
	s.emailIndex[normalizeEmail(p.Email)] = p.ID
	return nil
}

func (s *Storage) GetParticipant(ctx context.Context, id model.ParticipantID) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[id]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	return p, nil
}

func (s *Storage) GetParticipantByEmail(ctx context.Context, email string) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[normalizeEmail(email)]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	p, ok := s.participants[id]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	return p, nil
}

func (s *Storage) ListParticipantsInSession(ctx context.Context, sessionID model.SessionID) ([]*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Participant
	for _, p := range s.participants {
		if p.SessionID != nil && *p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.codeIndex[sess.Code] = sess.ID
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Storage) GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Storage) SessionCodeExists(ctx context.Context, code model.SessionCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codeIndex[code]
	return ok, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.codeIndex, sess.Code)
	}
	delete(s.sessions, id)
	return nil
}

func (s *Storage) FindFacilitatorSession(ctx context.Context, email string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *model.Session
	for _, sess := range s.sessions {
		if !sess.IsFacilitator(email) {
			continue
		}
		if latest == nil || sess.CreatedAt.After(latest.CreatedAt) {
			latest = sess
		}
	}
	if latest == nil {
		return nil, model.ErrSessionNotFound
	}
	return latest, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
