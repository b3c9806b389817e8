package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aibingo/aibingo-go/internal/catalog"
	"github.com/aibingo/aibingo-go/internal/dependencies/mocks"
	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/services/card"
	"github.com/aibingo/aibingo-go/internal/services/ratelimit"
	"github.com/aibingo/aibingo-go/internal/storage/memory"
	"github.com/aibingo/aibingo-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context

	sess *model.Session
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	limiter := ratelimit.NewMemory(s.clock)
	s.controller = NewController(s.storage, s.clock, limiter, testutil.NopLogger())
	s.ctx = context.Background()

	s.sess = &model.Session{
		ID:               "sess-1",
		Code:             "ABC234",
		FacilitatorEmail: "teach@example.com",
		UnlockedCore:     model.NewIDSet(),
		UnlockedBonus:    model.NewIDSet(),
		CreatedAt:        s.clock.Now(),
		UpdatedAt:        s.clock.Now(),
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.sess))
}

// createParticipant stores a participant in the test session with the core
// catalog in declaration order as their card
func (s *ControllerSuite) createParticipant(id string) *model.Participant {
	sessionID := s.sess.ID
	p := &model.Participant{
		ID:             model.ParticipantID(id),
		Email:          id + "@example.com",
		DisplayName:    id,
		SessionID:      &sessionID,
		CardLayout:     catalog.CoreIDs(),
		CompletedCore:  model.NewIDSet(),
		CompletedBonus: model.NewIDSet(),
		CreatedAt:      s.clock.Now(),
		UpdatedAt:      s.clock.Now(),
	}
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))
	return p
}

func (s *ControllerSuite) unlockCore(ids ...string) {
	for _, id := range ids {
		s.sess.UnlockedCore.Add(id)
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.sess))
}

func (s *ControllerSuite) completeCore(p *model.Participant, ids ...string) {
	s.unlockCore(ids...)
	for _, id := range ids {
		_, err := s.controller.CompleteComponent(s.ctx, p.ID, id)
		s.Require().NoError(err)
	}
}

// Core completion tests

func (s *ControllerSuite) TestCompleteUnlockedCoreComponent() {
	p := s.createParticipant("p1")
	s.unlockCore("prompting")

	result, err := s.controller.CompleteComponent(s.ctx, p.ID, "prompting")
	s.Require().NoError(err)

	s.Equal(catalog.TierCore, result.Tier)
	s.Require().NotNil(result.Core)
	s.Equal(1, result.Core.CompletedCount)
	s.Equal(0, result.Core.BingoLines)
	s.False(result.Core.FullCard)

	stored, _ := s.storage.GetParticipant(s.ctx, p.ID)
	s.True(stored.CompletedCore.Has("prompting"))
}

func (s *ControllerSuite) TestCompleteLockedCoreComponentRejected() {
	p := s.createParticipant("p1")

	_, err := s.controller.CompleteComponent(s.ctx, p.ID, "prompting")
	s.ErrorIs(err, model.ErrComponentLocked)

	stored, _ := s.storage.GetParticipant(s.ctx, p.ID)
	s.Zero(stored.CompletedCore.Len())
}

func (s *ControllerSuite) TestCompleteUnknownComponent() {
	p := s.createParticipant("p1")

	_, err := s.controller.CompleteComponent(s.ctx, p.ID, "nope")
	s.ErrorIs(err, model.ErrComponentNotFound)
}

func (s *ControllerSuite) TestCompleteUnknownParticipant() {
	_, err := s.controller.CompleteComponent(s.ctx, "ghost", "prompting")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *ControllerSuite) TestCompleteWithoutSession() {
	p := s.createParticipant("p1")
	p.SessionID = nil
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))

	_, err := s.controller.CompleteComponent(s.ctx, p.ID, "prompting")
	s.ErrorIs(err, model.ErrNotInSession)
}

func (s *ControllerSuite) TestCompleteIsIdempotent() {
	p := s.createParticipant("p1")
	s.unlockCore("prompting")

	first, err := s.controller.CompleteComponent(s.ctx, p.ID, "prompting")
	s.Require().NoError(err)
	second, err := s.controller.CompleteComponent(s.ctx, p.ID, "prompting")
	s.Require().NoError(err)

	s.Equal(first.Core, second.Core)

	stored, _ := s.storage.GetParticipant(s.ctx, p.ID)
	s.Equal(1, stored.CompletedCore.Len())
	s.Equal(first.Core.BingoLines, stored.BingoLines)
}

func (s *ControllerSuite) TestCompletingFirstRowScoresALine() {
	p := s.createParticipant("p1")
	row := p.CardLayout[:5]

	var result *Result
	s.unlockCore(row...)
	for _, id := range row {
		var err error
		result, err = s.controller.CompleteComponent(s.ctx, p.ID, id)
		s.Require().NoError(err)
	}

	s.Equal(1, result.Core.BingoLines)

	stored, _ := s.storage.GetParticipant(s.ctx, p.ID)
	s.Equal(1, stored.BingoLines)
}

func (s *ControllerSuite) TestCompletingWholeCardSetsFullCard() {
	p := s.createParticipant("p1")
	s.completeCore(p, p.CardLayout...)

	stored, _ := s.storage.GetParticipant(s.ctx, p.ID)
	s.True(stored.FullCard)
	s.Equal(card.CardSize, stored.CompletedCore.Len())
	s.Equal(11, stored.BingoLines)
}

func (s *ControllerSuite) TestCompleteIsRateLimited() {
	p := s.createParticipant("p1")
	s.unlockCore(p.CardLayout...)

	// Default budget is 30 completions per minute
	for i := 0; i < 20; i++ {
		_, err := s.controller.CompleteComponent(s.ctx, p.ID, p.CardLayout[i])
		s.Require().NoError(err)
	}
	for i := 0; i < 10; i++ {
		_, err := s.controller.CompleteComponent(s.ctx, p.ID, p.CardLayout[0])
		s.Require().NoError(err)
	}

	_, err := s.controller.CompleteComponent(s.ctx, p.ID, p.CardLayout[1])
	s.ErrorIs(err, model.ErrRateLimited)

	var rle *model.RateLimitError
	s.ErrorAs(err, &rle)
	s.Positive(rle.RetryAfter)
}

// Bonus completion tests

func (s *ControllerSuite) enableBonus() {
	s.sess.BonusEnabled = true
	for _, id := range catalog.BonusIDs() {
		s.sess.UnlockedBonus.Add(id)
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.sess))
}

func (s *ControllerSuite) TestBonusRequiresEnabledSession() {
	p := s.createParticipant("p1")
	s.completeCore(p, p.CardLayout[:10]...)

	_, err := s.controller.CompleteComponent(s.ctx, p.ID, "thinking-models")
	s.ErrorIs(err, model.ErrBonusNotEnabled)
}

func (s *ControllerSuite) TestBonusGateAtNineCoreRejected() {
	p := s.createParticipant("p1")
	s.enableBonus()
	s.completeCore(p, p.CardLayout[:9]...)

	_, err := s.controller.CompleteComponent(s.ctx, p.ID, "thinking-models")
	s.ErrorIs(err, model.ErrBonusGateNotMet)

	stored, _ := s.storage.GetParticipant(s.ctx, p.ID)
	s.Zero(stored.BonusPoints)
}

func (s *ControllerSuite) TestBonusGateAtTenCoreSucceeds() {
	p := s.createParticipant("p1")
	s.enableBonus()
	s.completeCore(p, p.CardLayout[:10]...)

	result, err := s.controller.CompleteComponent(s.ctx, p.ID, "thinking-models")
	s.Require().NoError(err)

	s.Equal(catalog.TierBonus, result.Tier)
	s.Require().NotNil(result.Bonus)
	s.Equal(50, result.Bonus.BonusPoints)
	s.Equal(1, result.Bonus.CompletedCount)
}

func (s *ControllerSuite) TestBonusCompletionIsIdempotent() {
	p := s.createParticipant("p1")
	s.enableBonus()
	s.completeCore(p, p.CardLayout[:10]...)

	_, err := s.controller.CompleteComponent(s.ctx, p.ID, "thinking-models")
	s.Require().NoError(err)
	second, err := s.controller.CompleteComponent(s.ctx, p.ID, "thinking-models")
	s.Require().NoError(err)

	s.Equal(50, second.Bonus.BonusPoints)

	stored, _ := s.storage.GetParticipant(s.ctx, p.ID)
	s.Equal(50, stored.BonusPoints)
	s.Equal(1, stored.CompletedBonus.Len())
}

func (s *ControllerSuite) TestBonusPointsAccumulate() {
	p := s.createParticipant("p1")
	s.enableBonus()
	s.completeCore(p, p.CardLayout[:10]...)

	_, _ = s.controller.CompleteComponent(s.ctx, p.ID, "thinking-models")
	result, err := s.controller.CompleteComponent(s.ctx, p.ID, "sub-agents")
	s.Require().NoError(err)

	s.Equal(100, result.Bonus.BonusPoints)
	s.Equal(2, result.Bonus.CompletedCount)
}

// GetGameState tests

func (s *ControllerSuite) TestGameStateStatuses() {
	p := s.createParticipant("p1")
	s.unlockCore("prompting", "embeddings")
	_, err := s.controller.CompleteComponent(s.ctx, p.ID, "prompting")
	s.Require().NoError(err)

	state, err := s.controller.GetGameState(s.ctx, p.ID)
	s.Require().NoError(err)

	s.Equal(card.StatusCompleted, state.Statuses["prompting"])
	s.Equal(card.StatusUnlocked, state.Statuses["embeddings"])
	s.Equal(card.StatusLocked, state.Statuses["chains"])
	// Bonus stays locked until the round opens and the gate is met
	s.Equal(card.StatusLocked, state.Statuses["thinking-models"])
}

func (s *ControllerSuite) TestGameStateBonusUnlocksBehindGate() {
	p := s.createParticipant("p1")
	s.enableBonus()
	s.completeCore(p, p.CardLayout[:10]...)

	state, err := s.controller.GetGameState(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(card.StatusUnlocked, state.Statuses["thinking-models"])
}

func (s *ControllerSuite) TestGameStateWithoutSession() {
	p := s.createParticipant("p1")
	p.SessionID = nil
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))

	state, err := s.controller.GetGameState(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Nil(state.Session)
	s.Equal(card.StatusLocked, state.Statuses["prompting"])
}

func (s *ControllerSuite) TestGameStateAfterSessionTerminated() {
	p := s.createParticipant("p1")
	s.Require().NoError(s.storage.DeleteSession(s.ctx, s.sess.ID))

	state, err := s.controller.GetGameState(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Nil(state.Session)
}
