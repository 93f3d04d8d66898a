package cli

import (
	"context"
	"hash/fnv"

	storagemem "github.com/askdocs/askdocs-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/askdocs/askdocs-cli/internal/adapters/driven/vector/memory"
	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/core/services"
)

// stubEmbedder produces deterministic vectors so retrieval is stable
// without a provider.
type stubEmbedder struct{ dimension int }

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum32()
	vec := make([]float32, e.dimension)
	for i := range vec {
		seed = seed*1664525 + 1013904223
		vec[i] = float32(seed%1000)/1000 - 0.5
	}
	return vec, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int              { return e.dimension }
func (e *stubEmbedder) ModelName() string            { return "stub-embedding" }
func (e *stubEmbedder) Ping(_ context.Context) error { return nil }
func (e *stubEmbedder) Close() error                 { return nil }

// stubLLM answers every question the same way.
type stubLLM struct{ answer string }

func (l *stubLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (*driven.ChatResult, error) {
	return &driven.ChatResult{
		Content: l.answer,
		Model:   "stub-llm",
		Usage:   driven.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func (l *stubLLM) ModelName() string            { return "stub-llm" }
func (l *stubLLM) Ping(_ context.Context) error { return nil }
func (l *stubLLM) Close() error                 { return nil }

// setupTestServices wires the pipeline against in-memory adapters and
// returns a cleanup that restores the previous globals.
func setupTestServices() func() {
	oldDocument := documentService
	oldQuery := queryService
	oldConversation := conversationService

	settings := domain.DefaultRAGSettings()
	settings.EmbeddingDimension = 8
	settings.SimilarityThreshold = 0.0

	index, err := vectormem.NewIndex(8)
	if err != nil {
		panic(err)
	}

	rag, err := services.NewRAGService(
		&stubEmbedder{dimension: 8},
		&stubLLM{answer: "Stub answer."},
		index,
		storagemem.NewDocumentStore(),
		storagemem.NewConversationStore(),
		settings,
	)
	if err != nil {
		panic(err)
	}

	documentService = rag
	queryService = rag
	conversationService = rag

	return func() {
		documentService = oldDocument
		queryService = oldQuery
		conversationService = oldConversation
	}
}
