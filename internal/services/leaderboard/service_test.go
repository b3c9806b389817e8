package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/storage/memory"
	"github.com/aibingo/aibingo-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) saveSession(id, code, facilitator string, createdAt time.Time) *model.Session {
	sess := &model.Session{
		ID:               model.SessionID(id),
		Code:             model.SessionCode(code),
		FacilitatorEmail: facilitator,
		UnlockedCore:     model.NewIDSet(),
		UnlockedBonus:    model.NewIDSet(),
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))
	return sess
}

type participantSpec struct {
	id, name    string
	sessionID   string
	coreCount   int
	bingoLines  int
	bonusPoints int
	fullCard    bool
}

func (s *ServiceSuite) saveParticipant(spec participantSpec) *model.Participant {
	completed := model.NewIDSet()
	for i := 0; i < spec.coreCount; i++ {
		completed.Add(string(rune('a' + i)))
	}
	p := &model.Participant{
		ID:             model.ParticipantID(spec.id),
		Email:          spec.id + "@example.com",
		DisplayName:    spec.name,
		CompletedCore:  completed,
		CompletedBonus: model.NewIDSet(),
		BingoLines:     spec.bingoLines,
		BonusPoints:    spec.bonusPoints,
		FullCard:       spec.fullCard,
	}
	if spec.sessionID != "" {
		sid := model.SessionID(spec.sessionID)
		p.SessionID = &sid
	}
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))
	return p
}

// Ranking tests

func (s *ServiceSuite) TestRankOrdersByLinesThenBonusThenScore() {
	participants := []*model.Participant{
		{DisplayName: "low-lines", CompletedCore: model.NewIDSet("a", "b", "c"), BingoLines: 1, BonusPoints: 500},
		{DisplayName: "high-lines", CompletedCore: model.NewIDSet("a"), BingoLines: 3},
		{DisplayName: "mid-bonus", CompletedCore: model.NewIDSet("a"), BingoLines: 2, BonusPoints: 50},
		{DisplayName: "mid-score", CompletedCore: model.NewIDSet("a", "b"), BingoLines: 2},
	}

	entries := Rank(participants)

	s.Equal([]string{"high-lines", "mid-bonus", "mid-score", "low-lines"},
		[]string{entries[0].Name, entries[1].Name, entries[2].Name, entries[3].Name})
	s.Equal([]int{1, 2, 3, 4},
		[]int{entries[0].Rank, entries[1].Rank, entries[2].Rank, entries[3].Rank})
}

func (s *ServiceSuite) TestRankTiesKeepInputOrder() {
	participants := []*model.Participant{
		{DisplayName: "first", BingoLines: 1, CompletedCore: model.NewIDSet()},
		{DisplayName: "second", BingoLines: 1, CompletedCore: model.NewIDSet()},
		{DisplayName: "third", BingoLines: 1, CompletedCore: model.NewIDSet()},
	}

	entries := Rank(participants)

	s.Equal("first", entries[0].Name)
	s.Equal("second", entries[1].Name)
	s.Equal("third", entries[2].Name)
}

func (s *ServiceSuite) TestRankOrderingInvariant() {
	participants := []*model.Participant{
		{DisplayName: "a", BingoLines: 2, BonusPoints: 100, CompletedCore: model.NewIDSet("x")},
		{DisplayName: "b", BingoLines: 2, BonusPoints: 100, CompletedCore: model.NewIDSet("x", "y")},
		{DisplayName: "c", BingoLines: 4, CompletedCore: model.NewIDSet()},
		{DisplayName: "d", BingoLines: 2, BonusPoints: 150, CompletedCore: model.NewIDSet()},
	}

	entries := Rank(participants)

	for i := 0; i < len(entries)-1; i++ {
		a, b := entries[i], entries[i+1]
		ordered := a.BingoLines > b.BingoLines ||
			(a.BingoLines == b.BingoLines && a.BonusPoints > b.BonusPoints) ||
			(a.BingoLines == b.BingoLines && a.BonusPoints == b.BonusPoints && a.Score >= b.Score)
		s.True(ordered, "entry %d must not rank below entry %d", i, i+1)
	}
}

func (s *ServiceSuite) TestRankFallsBackToEmailForEmptyName() {
	participants := []*model.Participant{
		{Email: "jane@example.com", CompletedCore: model.NewIDSet()},
	}

	entries := Rank(participants)
	s.Equal("ja***@example.com", entries[0].Name)
}

// Masking tests

func (s *ServiceSuite) TestMaskName() {
	s.Equal("***@example.com", MaskName("ab@example.com"))
	s.Equal("***@example.com", MaskName("a@example.com"))
	s.Equal("ja***@example.com", MaskName("jane@example.com"))
	s.Equal("Jane Doe", MaskName("Jane Doe"))
	s.Equal("", MaskName(""))
}

// Scope resolution tests

func (s *ServiceSuite) TestComputeUsesViewersSession() {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	s.saveSession("sess-1", "ABC234", "teach@example.com", now)
	s.saveParticipant(participantSpec{id: "p1", name: "Jane", sessionID: "sess-1", bingoLines: 2})
	s.saveParticipant(participantSpec{id: "p2", name: "Joe", sessionID: "sess-1", bingoLines: 1})
	s.saveParticipant(participantSpec{id: "p3", name: "Elsewhere"})

	board, err := s.service.Compute(s.ctx, "p1")
	s.Require().NoError(err)

	s.Equal(model.SessionCode("ABC234"), board.SessionCode)
	s.Len(board.Entries, 2)
	s.Equal("Jane", board.Entries[0].Name)
}

func (s *ServiceSuite) TestComputeFacilitatorSeesLatestOwnSession() {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	s.saveSession("sess-old", "OLD234", "teach@example.com", base)
	s.saveSession("sess-new", "NEW234", "teach@example.com", base.Add(time.Hour))
	s.saveParticipant(participantSpec{id: "p1", name: "Jane", sessionID: "sess-new"})
	// Facilitator identity: participant record with no session membership,
	// email matching the session owner
	s.saveParticipant(participantSpec{id: "teach", name: "Teach"})

	board, err := s.service.Compute(s.ctx, "teach")
	s.Require().NoError(err)

	s.Equal(model.SessionCode("NEW234"), board.SessionCode)
	s.Len(board.Entries, 1)
}

func (s *ServiceSuite) TestComputeNoScopeIsEmpty() {
	s.saveParticipant(participantSpec{id: "p1", name: "Loner"})

	board, err := s.service.Compute(s.ctx, "p1")
	s.Require().NoError(err)
	s.Empty(board.Entries)
	s.Empty(board.SessionCode)
}

func (s *ServiceSuite) TestComputeUnknownViewer() {
	_, err := s.service.Compute(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}
