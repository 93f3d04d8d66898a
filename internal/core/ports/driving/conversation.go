package driving

import (
	"context"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// ConversationService manages stored conversations and their history.
type ConversationService interface {
	// ListConversations returns all conversations, newest first.
	ListConversations(ctx context.Context) ([]domain.Conversation, error)

	// GetMessages returns a conversation's messages in chronological
	// order.
	GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error)

	// DeleteConversation removes a conversation and its messages.
	DeleteConversation(ctx context.Context, id string) error
}
