// Package progress implements the participant completion state machine.
// Per component a participant moves locked -> unlocked -> completed and
// never backward; the facilitator's unlocks gate the forward transitions.
package progress

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aibingo/aibingo-go/internal/catalog"
	"github.com/aibingo/aibingo-go/internal/dependencies/clock"
	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/services/card"
	"github.com/aibingo/aibingo-go/internal/services/ratelimit"
	"github.com/aibingo/aibingo-go/internal/storage"
)

// BonusGate is the minimum completed-core count before bonus components
// become available: half the card.
const BonusGate = card.CardSize / 2

// Controller applies completion events to participant records
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	limiter ratelimit.Limiter
	logger  *slog.Logger
}

// NewController creates a new progress Controller
func NewController(store storage.Storage, clk clock.Clock, limiter ratelimit.Limiter, logger *slog.Logger) *Controller {
	return &Controller{
		storage: store,
		clock:   clk,
		limiter: limiter,
		logger:  logger,
	}
}

// CoreResult is the outcome of a core completion
type CoreResult struct {
	BingoLines     int
	CompletedCount int
	FullCard       bool
}

// BonusResult is the outcome of a bonus completion
type BonusResult struct {
	BonusPoints    int
	CompletedCount int
}

// Result is the outcome of CompleteComponent; exactly one of Core or Bonus
// is set, matching the component's tier
type Result struct {
	Tier  catalog.Tier
	Core  *CoreResult
	Bonus *BonusResult
}

// CompleteComponent marks a component complete for the participant.
//
// Core components must be unlocked by the facilitator first. Bonus
// components additionally require the session's bonus round to be enabled
// and at least half the core card completed. Re-completing an already
// completed component is a no-op that still succeeds.
//
// The completed set and every derived field are written in a single save,
// so a store failure leaves the prior state fully intact.
func (c *Controller) CompleteComponent(ctx context.Context, participantID model.ParticipantID, componentID string) (*Result, error) {
	component, ok := catalog.Get(componentID)
	if !ok {
		return nil, model.ErrComponentNotFound
	}

	if res := c.limiter.CheckAndConsume(string(participantID), ratelimit.ActionComplete); !res.Allowed {
		return nil, &model.RateLimitError{Action: string(ratelimit.ActionComplete), RetryAfter: res.RetryAfter}
	}

	participant, err := c.storage.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if !participant.InSession() {
		return nil, model.ErrNotInSession
	}

	sess, err := c.storage.GetSession(ctx, *participant.SessionID)
	if err != nil {
		return nil, err
	}

	if component.Tier == catalog.TierBonus {
		return c.completeBonus(ctx, participant, sess, component)
	}
	return c.completeCore(ctx, participant, sess, component)
}

func (c *Controller) completeCore(ctx context.Context, p *model.Participant, sess *model.Session, component catalog.Component) (*Result, error) {
	if !sess.UnlockedCore.Has(component.ID) {
		return nil, model.ErrComponentLocked
	}

	if p.CompletedCore.Add(component.ID) {
		p.BingoLines = card.CountCompletedLines(p.CardLayout, p.CompletedCore)
		p.FullCard = p.CompletedCore.Len() == card.CardSize
		p.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveParticipant(ctx, p); err != nil {
			return nil, err
		}

		c.logger.Info("core component completed",
			slog.String("participant_id", string(p.ID)),
			slog.String("component_id", component.ID),
			slog.Int("bingo_lines", p.BingoLines),
		)
	}

	return &Result{
		Tier: catalog.TierCore,
		Core: &CoreResult{
			BingoLines:     p.BingoLines,
			CompletedCount: p.CompletedCore.Len(),
			FullCard:       p.FullCard,
		},
	}, nil
}

func (c *Controller) completeBonus(ctx context.Context, p *model.Participant, sess *model.Session, component catalog.Component) (*Result, error) {
	if !sess.BonusEnabled {
		return nil, model.ErrBonusNotEnabled
	}
	if p.CompletedCore.Len() < BonusGate {
		return nil, model.ErrBonusGateNotMet
	}

	if p.CompletedBonus.Add(component.ID) {
		p.BonusPoints += component.BonusPoints
		p.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveParticipant(ctx, p); err != nil {
			return nil, err
		}

		c.logger.Info("bonus component completed",
			slog.String("participant_id", string(p.ID)),
			slog.String("component_id", component.ID),
			slog.Int("bonus_points", p.BonusPoints),
		)
	}

	return &Result{
		Tier: catalog.TierBonus,
		Bonus: &BonusResult{
			BonusPoints:    p.BonusPoints,
			CompletedCount: p.CompletedBonus.Len(),
		},
	}, nil
}

// GameState bundles everything a participant's game view needs
type GameState struct {
	Participant *model.Participant
	// Session is nil when the participant has not joined one, or when
	// their session has been terminated
	Session *model.Session
	// Statuses maps every catalog component id to the participant's
	// status for it
	Statuses map[string]card.Status
}

// GetGameState returns the participant's current view of the game
func (c *Controller) GetGameState(ctx context.Context, participantID model.ParticipantID) (*GameState, error) {
	participant, err := c.storage.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	state := &GameState{Participant: participant}

	if participant.InSession() {
		sess, err := c.storage.GetSession(ctx, *participant.SessionID)
		if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
			return nil, err
		}
		// A terminated session reads as no session at all
		state.Session = sess
	}

	state.Statuses = deriveStatuses(state.Session, participant)
	return state, nil
}

// deriveStatuses computes the per-component status map once, so every
// surface renders from the same derivation
func deriveStatuses(sess *model.Session, p *model.Participant) map[string]card.Status {
	unlockedCore := model.NewIDSet()
	unlockedBonus := model.NewIDSet()
	if sess != nil {
		unlockedCore = sess.UnlockedCore
		// Bonus components stay locked until the bonus round opens and
		// the participant passes the core gate
		if sess.BonusEnabled && p.CompletedCore.Len() >= BonusGate {
			unlockedBonus = sess.UnlockedBonus
		}
	}

	statuses := make(map[string]card.Status)
	for _, component := range catalog.All() {
		if component.Tier == catalog.TierBonus {
			statuses[component.ID] = card.ComponentStatus(component.ID, unlockedBonus, p.CompletedBonus)
		} else {
			statuses[component.ID] = card.ComponentStatus(component.ID, unlockedCore, p.CompletedCore)
		}
	}
	return statuses
}

// Interface for dependency injection
type ControllerInterface interface {
	CompleteComponent(ctx context.Context, participantID model.ParticipantID, componentID string) (*Result, error)
	GetGameState(ctx context.Context, participantID model.ParticipantID) (*GameState, error)
}

var _ ControllerInterface = (*Controller)(nil)
