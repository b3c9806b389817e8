package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aibingo/aibingo-go/internal/model"
	"github.com/aibingo/aibingo-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) SaveParticipant(ctx context.Context, p *model.Participant) error {
	data, err := json.Marshal(participantToRecord(p))
	if err != nil {
		return err
	}

	// Roster index maintenance needs the previous session reference
	prev, err := s.GetParticipant(ctx, p.ID)
	if err != nil && !errors.Is(err, model.ErrParticipantNotFound) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, participantKey(p.ID), data, s.cfg.ParticipantTTL)
	pipe.Set(ctx, emailIndexKey(p.Email), string(p.ID), s.cfg.ParticipantTTL)

	if prev != nil && prev.SessionID != nil {
		if p.SessionID == nil || *prev.SessionID != *p.SessionID {
			pipe.SRem(ctx, rosterKey(*prev.SessionID), string(p.ID))
		}
	}
	if p.SessionID != nil {
		pipe.SAdd(ctx, rosterKey(*p.SessionID), string(p.ID))
		pipe.Expire(ctx, rosterKey(*p.SessionID), s.cfg.SessionTTL)
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetParticipant(ctx context.Context, id model.ParticipantID) (*model.Participant, error) {
	data, err := s.client.Get(ctx, participantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}

	var rec participantRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return participantFromRecord(rec), nil
}

func (s *Storage) GetParticipantByEmail(ctx context.Context, email string) (*model.Participant, error) {
	idStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}
	return s.GetParticipant(ctx, model.ParticipantID(idStr))
}

func (s *Storage) ListParticipantsInSession(ctx context.Context, sessionID model.SessionID) ([]*model.Participant, error) {
	ids, err := s.client.SMembers(ctx, rosterKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	var out []*model.Participant
	for _, id := range ids {
		p, err := s.GetParticipant(ctx, model.ParticipantID(id))
		if err != nil {
			if errors.Is(err, model.ErrParticipantNotFound) {
				// Expired participant still referenced by the roster
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sessionToRecord(sess))
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(sess.ID), data, s.cfg.SessionTTL)
	pipe.Set(ctx, codeIndexKey(sess.Code), string(sess.ID), s.cfg.SessionTTL)
	pipe.ZAdd(ctx, facilitatorKey(sess.FacilitatorEmail), redis.Z{
		Score:  float64(sess.CreatedAt.Unix()),
		Member: string(sess.ID),
	})
	pipe.Expire(ctx, facilitatorKey(sess.FacilitatorEmail), s.cfg.SessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return sessionFromRecord(rec), nil
}

func (s *Storage) GetSessionByCode(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	idStr, err := s.client.Get(ctx, codeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return s.GetSession(ctx, model.SessionID(idStr))
}

func (s *Storage) SessionCodeExists(ctx context.Context, code model.SessionCode) (bool, error) {
	n, err := s.client.Exists(ctx, codeIndexKey(code)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.Del(ctx, codeIndexKey(sess.Code))
	pipe.Del(ctx, rosterKey(id))
	pipe.ZRem(ctx, facilitatorKey(sess.FacilitatorEmail), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) FindFacilitatorSession(ctx context.Context, email string) (*model.Session, error) {
	// Newest first; skip ids whose session record has expired
	ids, err := s.client.ZRevRange(ctx, facilitatorKey(email), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		sess, err := s.GetSession(ctx, model.SessionID(id))
		if err != nil {
			if errors.Is(err, model.ErrSessionNotFound) {
				continue
			}
			return nil, err
		}
		return sess, nil
	}
	return nil, model.ErrSessionNotFound
}
