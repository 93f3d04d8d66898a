package domain

import "time"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation groups an ordered sequence of messages.
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID string `json:"id"`

	// Title is an optional display title.
	Title string `json:"title"`

	// CreatedAt is when the conversation was started.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the conversation last received a message.
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single turn within a conversation.
type Message struct {
	// ID is the unique identifier for the message.
	ID string `json:"id"`

	// ConversationID links to the parent Conversation.
	ConversationID string `json:"conversation_id"`

	// Role is one of RoleSystem, RoleUser, or RoleAssistant.
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Metadata holds generation details for assistant messages
	// (model, token usage, source count).
	Metadata map[string]any `json:"metadata,omitempty"`

	// CreatedAt is when the message was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// ValidRole reports whether role is a recognised message role.
func ValidRole(role string) bool {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}
