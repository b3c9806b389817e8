package redis

import (
	"fmt"
	"strings"

	"github.com/aibingo/aibingo-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "aibingo"

// participantKey returns the Redis key for a Participant
func participantKey(id model.ParticipantID) string {
	return fmt.Sprintf("%s:participant:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> participant_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, strings.ToLower(email))
}

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// codeIndexKey returns the Redis key for the code -> session_id index
func codeIndexKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, code)
}

// rosterKey returns the Redis key for the SET of participants in a session
func rosterKey(id model.SessionID) string {
	return fmt.Sprintf("%s:idx:roster:%s", keyPrefix, id)
}

// facilitatorKey returns the Redis key for the ZSET of a facilitator's
// sessions, scored by creation time
func facilitatorKey(email string) string {
	return fmt.Sprintf("%s:idx:facilitator:%s", keyPrefix, strings.ToLower(email))
}
