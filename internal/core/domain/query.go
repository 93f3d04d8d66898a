package domain

// QueryOptions configures a single RAG query.
type QueryOptions struct {
	// ConversationID continues an existing conversation when set.
	// When empty a new conversation is created.
	ConversationID string

	// TopK is the maximum number of chunks to retrieve.
	// Zero means the configured default.
	TopK int

	// SimilarityThreshold is the minimum similarity score a chunk must
	// reach to be considered. Negative means the configured default.
	SimilarityThreshold float64

	// DocumentID scopes retrieval to a single document when set.
	DocumentID string

	// IncludeSources controls whether source citations are returned.
	IncludeSources bool
}

// GenerationMetadata describes how an answer was produced.
type GenerationMetadata struct {
	// Model is the completion model that generated the answer.
	Model string `json:"model"`

	// PromptTokens is the number of input tokens consumed.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of output tokens produced.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the sum of prompt and completion tokens.
	TotalTokens int `json:"total_tokens"`

	// RetrievedChunkCount is the number of chunks that cleared the
	// similarity threshold, before the context budget was applied.
	RetrievedChunkCount int `json:"retrieved_chunk_count"`
}

// QueryResult is the output of one end-to-end RAG query.
// Sources are ordered identically to the chunks that were actually
// included in the generation context, so a caller can map each citation
// back to a passage of the answer.
type QueryResult struct {
	// ConversationID is the conversation this query belongs to.
	ConversationID string `json:"conversation_id"`

	// MessageID is the persisted assistant message.
	MessageID string `json:"message_id"`

	// Query is the original question.
	Query string `json:"query"`

	// Answer is the generated answer text.
	Answer string `json:"answer"`

	// Sources are the chunks used to build the generation context.
	// Empty when nothing cleared the threshold or sources were excluded.
	Sources []RetrievedChunk `json:"sources,omitempty"`

	// Metadata describes the generation.
	Metadata GenerationMetadata `json:"metadata"`
}
