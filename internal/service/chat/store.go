package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskmate-ai/taskmate/backend/internal/model/chat"
)

// Store owns all live sessions and their transcripts. Everything lives in
// process memory for the lifetime of a single server instance; callers only
// ever see copies, never the backing slices.
type Store struct {
	mu       sync.RWMutex
	counter  uint64
	sessions map[string]*chat.Session
	messages map[string][]chat.Message
}

// NewStore bootstraps the in-memory session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*chat.Session),
		messages: make(map[string][]chat.Message),
	}
}

// ResolveOrCreate returns a usable session id for the candidate. An empty or
// unknown candidate allocates a fresh session with empty history; a known
// candidate is touched and returned unchanged. Never fails.
func (s *Store) ResolveOrCreate(_ context.Context, candidateID string) string {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if candidateID != "" {
		if session, ok := s.sessions[candidateID]; ok {
			session.LastActivityAt = now
			return candidateID
		}
	}

	s.counter++
	id := fmt.Sprintf("session_%d", s.counter)
	s.sessions[id] = &chat.Session{
		ID:             id,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	s.messages[id] = make([]chat.Message, 0, 16)
	return id
}

// Append records one completed turn: the user message followed by the
// assistant reply, stamped in that order. Unknown session ids are dropped
// silently so the turn-handling path stays total.
func (s *Store) Append(_ context.Context, sessionID, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return
	}

	s.messages[sessionID] = append(s.messages[sessionID],
		chat.Message{
			ID:        uuid.NewString(),
			Role:      chat.RoleUser,
			Content:   userText,
			Timestamp: time.Now().UTC(),
		},
		chat.Message{
			ID:        uuid.NewString(),
			Role:      chat.RoleAssistant,
			Content:   assistantText,
			Timestamp: time.Now().UTC(),
		},
	)
}

// Messages returns the session transcript in insertion order, or an empty
// slice for an unknown id. Does not touch LastActivityAt.
func (s *Store) Messages(_ context.Context, sessionID string) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return []chat.Message{}
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied
}

// Session looks up a session record by id.
func (s *Store) Session(_ context.Context, sessionID string) (chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, false
	}
	return *session, true
}

// Delete removes the session and its history. Idempotent.
func (s *Store) Delete(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	delete(s.messages, sessionID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
