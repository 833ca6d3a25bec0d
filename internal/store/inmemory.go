package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/antoniostano/ingpt/internal/chat"
)

// InMemoryStore is a process-local session store for local/dev use and tests.
// It keeps the same append-only contract as the Postgres store but does not
// survive restarts.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string][]Record)}
}

func (s *InMemoryStore) Append(_ context.Context, sessionID string, msg chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := s.sessions[sessionID]
	s.sessions[sessionID] = append(log, Record{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Seq:       int64(len(log) + 1),
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (s *InMemoryStore) History(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.sessions[sessionID]
	out := make([]chat.Message, 0, len(log))
	for _, r := range log {
		out = append(out, chat.Message{Role: r.Role, Content: r.Content})
	}
	return out, nil
}

func (s *InMemoryStore) Close() error { return nil }
