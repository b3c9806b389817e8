// Package session implements facilitator-run sessions: creation with a
// short join code, participant joining, component unlocks, the bonus round
// toggle and termination.
package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aibingo/aibingo-go/internal/catalog"
	"github.com/aibingo/aibingo-go/internal/dependencies/clock"
	"github.com/aibingo/aibingo-go/internal/dependencies/random"
	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/services/card"
	"github.com/aibingo/aibingo-go/internal/services/ratelimit"
	"github.com/aibingo/aibingo-go/internal/storage"
)

const (
	// CodeLength is the length of generated session codes
	CodeLength = 6
	// CodeAlphabet is the characters used in session codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages session lifecycle and membership
type Controller struct {
	storage storage.Storage
	cards   *card.Service
	clock   clock.Clock
	random  random.Random
	limiter ratelimit.Limiter
	logger  *slog.Logger
}

// NewController creates a new session Controller
func NewController(
	store storage.Storage,
	cards *card.Service,
	clk clock.Clock,
	rnd random.Random,
	limiter ratelimit.Limiter,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: store,
		cards:   cards,
		clock:   clk,
		random:  rnd,
		limiter: limiter,
		logger:  logger,
	}
}

// CreateSession creates a new session owned by the facilitator
func (c *Controller) CreateSession(ctx context.Context, facilitatorEmail string) (*model.Session, error) {
	if res := c.limiter.CheckAndConsume(facilitatorEmail, ratelimit.ActionCreateSession); !res.Allowed {
		return nil, &model.RateLimitError{Action: string(ratelimit.ActionCreateSession), RetryAfter: res.RetryAfter}
	}

	// Generate a unique join code; the generator alone does not guarantee
	// uniqueness, so retry on collision
	var code model.SessionCode
	for {
		code = model.SessionCode(c.random.String(CodeLength, CodeAlphabet))
		exists, err := c.storage.SessionCodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	now := c.clock.Now()
	sess := &model.Session{
		ID:               model.SessionID(uuid.NewString()),
		Code:             code,
		FacilitatorEmail: facilitatorEmail,
		UnlockedCore:     model.NewIDSet(),
		UnlockedBonus:    model.NewIDSet(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(sess.ID)),
		slog.String("code", string(sess.Code)),
	)
	return sess, nil
}

// GetSession retrieves a session by id
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// GetSessionByCode retrieves a session by join code, case-insensitively
func (c *Controller) GetSessionByCode(ctx context.Context, rawCode string) (*model.Session, error) {
	return c.storage.GetSessionByCode(ctx, model.NormalizeSessionCode(rawCode))
}

// JoinSession puts a participant into the session identified by code.
// The participant gets a freshly shuffled card and all prior progress is
// reset; switching sessions never carries completion over.
func (c *Controller) JoinSession(ctx context.Context, rawCode string, participantID model.ParticipantID) (*model.Session, error) {
	if res := c.limiter.CheckAndConsume(string(participantID), ratelimit.ActionJoinSession); !res.Allowed {
		return nil, &model.RateLimitError{Action: string(ratelimit.ActionJoinSession), RetryAfter: res.RetryAfter}
	}

	sess, err := c.storage.GetSessionByCode(ctx, model.NormalizeSessionCode(rawCode))
	if err != nil {
		return nil, err
	}

	participant, err := c.storage.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	sessionID := sess.ID
	participant.SessionID = &sessionID
	participant.CardLayout = c.cards.GenerateLayout()
	participant.CompletedCore = model.NewIDSet()
	participant.CompletedBonus = model.NewIDSet()
	participant.BingoLines = 0
	participant.BonusPoints = 0
	participant.FullCard = false
	participant.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveParticipant(ctx, participant); err != nil {
		return nil, err
	}

	c.logger.Info("participant joined session",
		slog.String("participant_id", string(participantID)),
		slog.String("session_id", string(sess.ID)),
	)
	return sess, nil
}

// UnlockComponent adds a component to the session's unlocked set.
// Unlocks are one-directional and idempotent; the set only grows. The read-
// merge-write here means two racing unlocks end up as the union of both.
func (c *Controller) UnlockComponent(ctx context.Context, sessionID model.SessionID, componentID string, actingEmail string) error {
	component, ok := catalog.Get(componentID)
	if !ok {
		return model.ErrComponentNotFound
	}

	if res := c.limiter.CheckAndConsume(actingEmail, ratelimit.ActionUnlock); !res.Allowed {
		return &model.RateLimitError{Action: string(ratelimit.ActionUnlock), RetryAfter: res.RetryAfter}
	}

	sess, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if !sess.IsFacilitator(actingEmail) {
		return model.ErrNotFacilitator
	}

	var added bool
	if component.Tier == catalog.TierBonus {
		added = sess.UnlockedBonus.Add(componentID)
	} else {
		added = sess.UnlockedCore.Add(componentID)
	}
	if !added {
		return nil
	}

	sess.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		return err
	}

	c.logger.Info("component unlocked",
		slog.String("session_id", string(sessionID)),
		slog.String("component_id", componentID),
		slog.String("tier", string(component.Tier)),
	)
	return nil
}

// SetBonusEnabled toggles the session's bonus round
func (c *Controller) SetBonusEnabled(ctx context.Context, sessionID model.SessionID, enabled bool, actingEmail string) error {
	sess, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if !sess.IsFacilitator(actingEmail) {
		return model.ErrNotFacilitator
	}

	if sess.BonusEnabled == enabled {
		return nil
	}

	sess.BonusEnabled = enabled
	sess.UpdatedAt = c.clock.Now()
	return c.storage.SaveSession(ctx, sess)
}

// TerminateSession deletes a session. Participants keep their stale session
// reference; their next read resolves it to a session-not-found condition.
func (c *Controller) TerminateSession(ctx context.Context, sessionID model.SessionID, actingEmail string) error {
	sess, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if !sess.IsFacilitator(actingEmail) {
		return model.ErrNotFacilitator
	}

	if err := c.storage.DeleteSession(ctx, sessionID); err != nil {
		return err
	}

	c.logger.Info("session terminated", slog.String("session_id", string(sessionID)))
	return nil
}

// State bundles a session with its participant roster for the facilitator
// dashboard
type State struct {
	Session      *model.Session
	Participants []*model.Participant
}

// SessionState returns the session and its roster
func (c *Controller) SessionState(ctx context.Context, sessionID model.SessionID) (*State, error) {
	sess, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	participants, err := c.storage.ListParticipantsInSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &State{Session: sess, Participants: participants}, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, facilitatorEmail string) (*model.Session, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	GetSessionByCode(ctx context.Context, rawCode string) (*model.Session, error)
	JoinSession(ctx context.Context, rawCode string, participantID model.ParticipantID) (*model.Session, error)
	UnlockComponent(ctx context.Context, sessionID model.SessionID, componentID string, actingEmail string) error
	SetBonusEnabled(ctx context.Context, sessionID model.SessionID, enabled bool, actingEmail string) error
	TerminateSession(ctx context.Context, sessionID model.SessionID, actingEmail string) error
	SessionState(ctx context.Context, sessionID model.SessionID) (*State, error)
}

var _ ControllerInterface = (*Controller)(nil)
