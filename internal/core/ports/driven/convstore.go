package driven

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// ConversationStore persists conversations and their messages.
// Backed by SQLite.
type ConversationStore interface {
	// SaveConversation stores or updates a conversation.
	SaveConversation(ctx context.Context, conv *domain.Conversation) error

	// GetConversation retrieves a conversation by ID.
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)

	// SaveMessages appends messages to a conversation atomically.
	SaveMessages(ctx context.Context, messages []domain.Message) error

	// GetMessages returns a conversation's messages in chronological order.
	GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error)

	// ListConversations returns all conversations, newest first.
	ListConversations(ctx context.Context) ([]domain.Conversation, error)

	// DeleteConversation removes a conversation and its messages.
	DeleteConversation(ctx context.Context, id string) error
}
