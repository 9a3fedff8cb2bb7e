// Package memory holds the in-memory message store used when the service
// runs without its remote backend. It exists so the chat flow can be
// exercised with no network dependency and then switched to the durable
// store with a single flag.
package memory

import (
	"context"
	"sync"

	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/internal/repo/messagestore"
)

var _ messagestore.Store = (*Store)(nil)

// Store keeps messages in insertion order. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages []models.Message
}

func New(seed ...models.Message) *Store {
	s := &Store{
		messages: make([]models.Message, 0, len(seed)),
	}
	s.messages = append(s.messages, seed...)
	return s
}

// GetMessagesForChannel filters by exact channel match, preserving
// insertion order.
func (s *Store) GetMessagesForChannel(_ context.Context, channel string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.Channel == channel {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

func (s *Store) Append(_ context.Context, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
