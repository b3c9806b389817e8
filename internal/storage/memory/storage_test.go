package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aibingo/aibingo-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newParticipant(id, email string, sessionID string) *model.Participant {
	p := &model.Participant{
		ID:             model.ParticipantID(id),
		Email:          email,
		DisplayName:    email,
		CompletedCore:  model.NewIDSet(),
		CompletedBonus: model.NewIDSet(),
	}
	if sessionID != "" {
		sid := model.SessionID(sessionID)
		p.SessionID = &sid
	}
	return p
}

func (s *StorageSuite) newSession(id, code, facilitator string, createdAt time.Time) *model.Session {
	return &model.Session{
		ID:               model.SessionID(id),
		Code:             model.SessionCode(code),
		FacilitatorEmail: facilitator,
		UnlockedCore:     model.NewIDSet(),
		UnlockedBonus:    model.NewIDSet(),
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
}

// Participant tests

func (s *StorageSuite) TestSaveAndGetParticipant() {
	p := s.newParticipant("p1", "jane@example.com", "")
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))

	got, err := s.storage.GetParticipant(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(p.Email, got.Email)
}

func (s *StorageSuite) TestGetParticipantNotFound() {
	_, err := s.storage.GetParticipant(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *StorageSuite) TestGetParticipantByEmailIsCaseInsensitive() {
	p := s.newParticipant("p1", "Jane@Example.com", "")
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))

	got, err := s.storage.GetParticipantByEmail(s.ctx, "jane@example.COM")
	s.Require().NoError(err)
	s.Equal(model.ParticipantID("p1"), got.ID)
}

func (s *StorageSuite) TestListParticipantsInSession() {
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, s.newParticipant("p1", "a@example.com", "sess-1")))
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, s.newParticipant("p2", "b@example.com", "sess-1")))
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, s.newParticipant("p3", "c@example.com", "sess-2")))
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, s.newParticipant("p4", "d@example.com", "")))

	got, err := s.storage.ListParticipantsInSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Len(got, 2)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	sess := s.newSession("sess-1", "ABC234", "teach@example.com", time.Now())
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	byID, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(sess.Code, byID.Code)

	byCode, err := s.storage.GetSessionByCode(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal(sess.ID, byCode.ID)
}

func (s *StorageSuite) TestSessionCodeExists() {
	exists, err := s.storage.SessionCodeExists(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("sess-1", "ABC234", "teach@example.com", time.Now())))

	exists, err = s.storage.SessionCodeExists(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestDeleteSessionRemovesCodeIndex() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("sess-1", "ABC234", "teach@example.com", time.Now())))
	s.Require().NoError(s.storage.DeleteSession(s.ctx, "sess-1"))

	_, err := s.storage.GetSession(s.ctx, "sess-1")
	s.ErrorIs(err, model.ErrSessionNotFound)

	exists, _ := s.storage.SessionCodeExists(s.ctx, "ABC234")
	s.False(exists)
}

func (s *StorageSuite) TestFindFacilitatorSessionReturnsLatest() {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("sess-old", "OLD234", "teach@example.com", base)))
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("sess-new", "NEW234", "teach@example.com", base.Add(time.Hour))))
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("sess-other", "OTH234", "other@example.com", base.Add(2*time.Hour))))

	got, err := s.storage.FindFacilitatorSession(s.ctx, "teach@example.com")
	s.Require().NoError(err)
	s.Equal(model.SessionID("sess-new"), got.ID)
}

func (s *StorageSuite) TestFindFacilitatorSessionNotFound() {
	_, err := s.storage.FindFacilitatorSession(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
