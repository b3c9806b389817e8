// Package leaderboard computes per-session rankings. Entries are always
// recomputed from participant state; nothing here is persisted.
package leaderboard

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/storage"
)

// Entry is one ranked row. Name is privacy-masked when it is a raw email.
type Entry struct {
	Rank        int
	Name        string
	Score       int // completed core components
	BingoLines  int
	BonusPoints int
	FullCard    bool
}

// Board is a computed leaderboard for one session scope
type Board struct {
	Entries     []Entry
	SessionCode model.SessionCode
}

// Service computes leaderboards
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new leaderboard Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{storage: store, logger: logger}
}

// Compute builds the leaderboard visible to the given viewer.
//
// Scope resolution: the viewer's own session if they are in one; otherwise,
// if the viewer facilitates sessions, their most recently created one. A
// viewer with neither gets an empty board.
func (s *Service) Compute(ctx context.Context, viewerID model.ParticipantID) (*Board, error) {
	viewer, err := s.storage.GetParticipant(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	sess, err := s.resolveScope(ctx, viewer)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return &Board{}, nil
		}
		return nil, err
	}

	participants, err := s.storage.ListParticipantsInSession(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	return &Board{
		Entries:     Rank(participants),
		SessionCode: sess.Code,
	}, nil
}

func (s *Service) resolveScope(ctx context.Context, viewer *model.Participant) (*model.Session, error) {
	if viewer.InSession() {
		return s.storage.GetSession(ctx, *viewer.SessionID)
	}
	return s.storage.FindFacilitatorSession(ctx, viewer.Email)
}

// Rank sorts participants into leaderboard entries. Sort keys, descending:
// bingo lines, then bonus points, then completed core count. The sort is
// stable so ties keep input order and repeated calls agree.
func Rank(participants []*model.Participant) []Entry {
	entries := make([]Entry, len(participants))
	for i, p := range participants {
		name := p.DisplayName
		if name == "" {
			name = p.Email
		}
		entries[i] = Entry{
			Name:        MaskName(name),
			Score:       p.CompletedCore.Len(),
			BingoLines:  p.BingoLines,
			BonusPoints: p.BonusPoints,
			FullCard:    p.FullCard,
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].BingoLines != entries[j].BingoLines {
			return entries[i].BingoLines > entries[j].BingoLines
		}
		if entries[i].BonusPoints != entries[j].BonusPoints {
			return entries[i].BonusPoints > entries[j].BonusPoints
		}
		return entries[i].Score > entries[j].Score
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// MaskName hides the local part of an email-shaped display name: the first
// two characters survive if the local part is longer than two characters.
// Names without an @ are shown verbatim.
func MaskName(name string) string {
	at := strings.Index(name, "@")
	if at < 0 {
		return name
	}

	local, domain := name[:at], name[at+1:]
	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}
	return "***@" + domain
}
