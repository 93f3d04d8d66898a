// Package driven defines the secondary (outbound) ports of the core.
//
// These interfaces are implemented by infrastructure adapters:
//   - EmbeddingService: external embedding model (OpenAI, Ollama)
//   - LLMService: external completion model (OpenAI, Anthropic, Ollama)
//   - VectorIndex: similarity search over chunk embeddings
//   - DocumentStore: document and chunk persistence (SQLite)
//   - ConversationStore: conversation and message persistence (SQLite)
//   - PromptStore: user-customisable prompt templates
//
// The core services depend only on these interfaces, never on the
// adapters themselves.
package driven
