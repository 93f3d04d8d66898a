package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore is an in-memory implementation of driven.ConversationStore.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]domain.Conversation
	messages      map[string][]domain.Message
}

// NewConversationStore creates a new in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]domain.Conversation),
		messages:      make(map[string][]domain.Message),
	}
}

// SaveConversation stores or updates a conversation.
func (s *ConversationStore) SaveConversation(_ context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conv.ID] = *conv
	return nil
}

// GetConversation retrieves a conversation by ID.
func (s *ConversationStore) GetConversation(_ context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &conv, nil
}

// SaveMessages appends messages to their conversations.
func (s *ConversationStore) SaveMessages(_ context.Context, messages []domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range messages {
		s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	}
	return nil
}

// GetMessages returns a conversation's messages in chronological order.
func (s *ConversationStore) GetMessages(_ context.Context, conversationID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[conversationID]
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// ListConversations returns all conversations, newest first.
func (s *ConversationStore) ListConversations(_ context.Context) ([]domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	convs := make([]domain.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		convs = append(convs, conv)
	}
	sort.Slice(convs, func(i, j int) bool { return convs[i].UpdatedAt.After(convs[j].UpdatedAt) })
	return convs, nil
}

// DeleteConversation removes a conversation and its messages.
func (s *ConversationStore) DeleteConversation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, id)
	delete(s.messages, id)
	return nil
}
