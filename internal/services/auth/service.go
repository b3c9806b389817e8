// Package auth implements magic-link login: a signed token is mailed to the
// participant, and verifying it opens a server-side session.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aibingo/aibingo-go/internal/dependencies/clock"
	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/services/ratelimit"
	"github.com/aibingo/aibingo-go/internal/storage"
)

// Errors
var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidToken   = errors.New("invalid or expired login token")
	ErrInvalidSession = errors.New("invalid or expired session")
)

// Session represents an authenticated browser/CLI session
type Session struct {
	Token         string
	ParticipantID model.ParticipantID
	Participant   model.Participant
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Config holds configuration for the auth service
type Config struct {
	// TokenSecret signs magic-link tokens (HS256)
	TokenSecret []byte
	// TokenTTL is how long a magic link stays valid
	TokenTTL time.Duration
	// SessionDuration is how long a verified session stays valid
	SessionDuration time.Duration
	// BaseURL is the public URL used to build login links
	BaseURL string
}

// DefaultConfig returns default auth configuration.
// TokenSecret must still be provided by the caller.
func DefaultConfig() Config {
	return Config{
		TokenTTL:        15 * time.Minute,
		SessionDuration: 24 * time.Hour,
		BaseURL:         "http://localhost:8080",
	}
}

// Service handles magic-link login and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	mail    MailSender
	limiter ratelimit.Limiter
	cfg     Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New creates a new auth Service
func New(store storage.Storage, clk clock.Clock, mail MailSender, limiter ratelimit.Limiter, cfg Config) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:  store,
		clock:    clk,
		mail:     mail,
		limiter:  limiter,
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// RequestLogin issues a magic-link token for the email and hands the link to
// the mail sender
func (s *Service) RequestLogin(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	if res := s.limiter.CheckAndConsume(email, ratelimit.ActionLogin); !res.Allowed {
		return &model.RateLimitError{Action: string(ratelimit.ActionLogin), RetryAfter: res.RetryAfter}
	}

	token, err := s.IssueLoginToken(email)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify?token=%s", strings.TrimSuffix(s.cfg.BaseURL, "/"), url.QueryEscape(token))
	return s.mail.SendLoginLink(ctx, email, link)
}

// IssueLoginToken creates a signed short-lived token carrying the email
func (s *Service) IssueLoginToken(email string) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.TokenSecret)
}

// VerifyLogin validates a magic-link token, finds or creates the participant
// for its email, and opens a session
func (s *Service) VerifyLogin(ctx context.Context, tokenStr string) (*Session, error) {
	email, err := s.parseLoginToken(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	participant, err := s.findOrCreateParticipant(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.createSession(participant)
}

func (s *Service) parseLoginToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.TokenSecret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *Service) findOrCreateParticipant(ctx context.Context, email string) (*model.Participant, error) {
	participant, err := s.storage.GetParticipantByEmail(ctx, email)
	if err == nil {
		return participant, nil
	}
	if !errors.Is(err, model.ErrParticipantNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	participant = &model.Participant{
		ID:             model.ParticipantID(uuid.NewString()),
		Email:          email,
		DisplayName:    displayNameFromEmail(email),
		CompletedCore:  model.NewIDSet(),
		CompletedBonus: model.NewIDSet(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.storage.SaveParticipant(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// ValidateSession checks a session token and returns the session with a
// fresh read of the participant record
func (s *Service) ValidateSession(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	participant, err := s.storage.GetParticipant(ctx, session.ParticipantID)
	if err != nil {
		if errors.Is(err, model.ErrParticipantNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	session.Participant = *participant
	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *Service) createSession(participant *model.Participant) (*Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &Session{
		Token:         token,
		ParticipantID: participant.ID,
		Participant:   *participant,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.cfg.SessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func displayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
