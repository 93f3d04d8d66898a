package driven

import "context"

// LLMService provides text generation for answer synthesis.
//
// Implementations may include:
//   - OpenAI (gpt-5 family, gpt-4o family)
//   - Anthropic (Claude)
//   - Ollama (local models)
//
// Parameter support varies per model: some completion models only accept
// a fixed default temperature. Implementations detect the model identity
// and omit unsupported parameters rather than sending them and failing.
type LLMService interface {
	// Chat produces a completion for a multi-turn message sequence and
	// returns the answer with token usage.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error)

	// ModelName returns the name of the completion model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures generation behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	// Ignored for models that do not support overriding it.
	Temperature float64
}

// TokenUsage reports token consumption for one generation call.
type TokenUsage struct {
	// PromptTokens is the number of input tokens.
	PromptTokens int

	// CompletionTokens is the number of generated tokens.
	CompletionTokens int

	// TotalTokens is the sum of prompt and completion tokens.
	TotalTokens int
}

// ChatResult is the outcome of a generation call.
type ChatResult struct {
	// Content is the generated text.
	Content string

	// Model is the model identifier reported by the provider.
	Model string

	// Usage is the token consumption for the call.
	Usage TokenUsage
}
