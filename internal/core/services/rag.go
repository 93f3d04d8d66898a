package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/askdocs/askdocs-cli/internal/chunker"
	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driving"
	"github.com/askdocs/askdocs-cli/internal/logger"
)

// Ensure RAGService implements the driving ports.
var (
	_ driving.DocumentService     = (*RAGService)(nil)
	_ driving.QueryService        = (*RAGService)(nil)
	_ driving.ConversationService = (*RAGService)(nil)
)

// Fallback prompts used when no PromptStore is configured.
const (
	defaultAnswerSystemPrompt = `You are a helpful AI assistant with access to a knowledge base.
Use the provided context to answer questions accurately and concisely.
If the context doesn't contain relevant information, say so clearly.
Always cite which sources you used in your answer.`

	defaultAnswerWithContextPrompt = `Context from knowledge base:

%s

---

Question: %s

Please answer based on the context provided above.`

	defaultAnswerNoContextPrompt = `Question: %s

Note: No relevant context was found in the knowledge base. Please answer
based on your general knowledge and mention that this is not from the
knowledge base.`
)

// RAGService is the top-level pipeline orchestrator. Ingestion runs
// chunker and embedder and persists the result; querying runs retriever,
// context builder, and generator, then packages the answer with source
// citations.
type RAGService struct {
	chunker     *chunker.Chunker
	embedder    driven.EmbeddingService
	llm         driven.LLMService
	vectorIndex driven.VectorIndex
	docStore    driven.DocumentStore
	convStore   driven.ConversationStore
	promptStore driven.PromptStore
	retriever   *Retriever
	builder     *ContextBuilder
	settings    domain.RAGSettings
}

// NewRAGService wires the pipeline. Settings must already be validated at
// the boundary; NewRAGService re-checks only the chunker invariant because
// it constructs the chunker itself.
func NewRAGService(
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	vectorIndex driven.VectorIndex,
	docStore driven.DocumentStore,
	convStore driven.ConversationStore,
	settings domain.RAGSettings,
) (*RAGService, error) {
	ck, err := chunker.New(settings.ChunkSize, settings.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	return &RAGService{
		chunker:     ck,
		embedder:    embedder,
		llm:         llm,
		vectorIndex: vectorIndex,
		docStore:    docStore,
		convStore:   convStore,
		retriever:   NewRetriever(embedder, vectorIndex, docStore),
		builder:     NewContextBuilder(settings.ContextBudget),
		settings:    settings,
	}, nil
}

// SetPromptStore sets the store for customisable prompt templates.
// Without one, embedded defaults are used.
func (s *RAGService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ingest chunks and embeds a document, then persists the document, its
// chunks, and their vectors. The chunk batch write is atomic: a failure
// anywhere leaves no partial chunk set behind.
func (s *RAGService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.Document, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: document title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: document content is required", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Document Ingestion")

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}

	chunks := s.chunker.Split(doc)
	logger.Info("Split %q into %d chunks", doc.Title, len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	var embeddings [][]float32
	err := withRetry(ctx, "embed chunks", func() error {
		var embedErr error
		embeddings, embedErr = s.embedder.EmbedBatch(ctx, texts)
		return embedErr
	})
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
			domain.ErrEmbeddingUnavailable, len(chunks), len(embeddings))
	}
	for i := range chunks {
		if len(embeddings[i]) != s.settings.EmbeddingDimension {
			return nil, fmt.Errorf("%w: chunk %d has dimension %d, index expects %d",
				domain.ErrDimensionMismatch, i, len(embeddings[i]), s.settings.EmbeddingDimension)
		}
		chunks[i].Embedding = embeddings[i]
	}

	doc.ChunkCount = len(chunks)
	if err := s.docStore.SaveDocumentWithChunks(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("%w: persist document: %w", domain.ErrStorageUnavailable, err)
	}

	if err := s.indexChunks(ctx, chunks); err != nil {
		// Keep the all-or-nothing guarantee: roll back the stored
		// document rather than leave it unsearchable.
		if delErr := s.docStore.DeleteDocument(ctx, doc.ID); delErr != nil {
			logger.Warn("Rollback of document %s failed: %v", doc.ID, delErr)
		}
		return nil, fmt.Errorf("%w: index chunks: %w", domain.ErrStorageUnavailable, err)
	}

	logger.Info("Ingested document %s with %d chunks", doc.ID, doc.ChunkCount)
	return doc, nil
}

// indexChunks upserts all chunk vectors into the vector index.
func (s *RAGService) indexChunks(ctx context.Context, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		meta := driven.VectorMeta{DocumentID: chunk.DocumentID}
		if err := s.vectorIndex.Upsert(ctx, chunk.ID, chunk.Embedding, meta); err != nil {
			return fmt.Errorf("upsert chunk %s: %w", chunk.ID, err)
		}
	}
	return nil
}

// Get retrieves a document by ID.
func (s *RAGService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, id)
}

// List returns all documents, newest first.
func (s *RAGService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Delete removes a document, its chunks, and its vector index entries.
func (s *RAGService) Delete(ctx context.Context, id string) error {
	if _, err := s.docStore.GetDocument(ctx, id); err != nil {
		return err
	}
	if err := s.vectorIndex.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("%w: deindex document: %w", domain.ErrStorageUnavailable, err)
	}
	if err := s.docStore.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("%w: delete document: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// ListConversations returns all conversations, newest first.
func (s *RAGService) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	return s.convStore.ListConversations(ctx)
}

// GetMessages returns a conversation's messages in chronological order.
func (s *RAGService) GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	if _, err := s.convStore.GetConversation(ctx, conversationID); err != nil {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, err)
	}
	return s.convStore.GetMessages(ctx, conversationID)
}

// DeleteConversation removes a conversation and its messages.
func (s *RAGService) DeleteConversation(ctx context.Context, id string) error {
	if _, err := s.convStore.GetConversation(ctx, id); err != nil {
		return err
	}
	if err := s.convStore.DeleteConversation(ctx, id); err != nil {
		return fmt.Errorf("%w: delete conversation: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Query runs the retrieve-then-generate pipeline. Zero retrieved chunks is
// not an error: the generator is still asked for a best-effort answer with
// an explicit no-context prompt.
func (s *RAGService) Query(
	ctx context.Context, query string, opts domain.QueryOptions,
) (*domain.QueryResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("RAG Query")

	topK := opts.TopK
	if topK <= 0 {
		topK = s.settings.TopK
	}
	threshold := opts.SimilarityThreshold
	if threshold < 0 {
		threshold = s.settings.SimilarityThreshold
	}

	conv, err := s.getOrCreateConversation(ctx, opts.ConversationID)
	if err != nil {
		return nil, err
	}

	var retrieved []domain.RetrievedChunk
	err = withRetry(ctx, "retrieve", func() error {
		var retErr error
		retrieved, retErr = s.retriever.Retrieve(ctx, query, topK, threshold, opts.DocumentID)
		return retErr
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	contextText, included := s.builder.Build(retrieved)
	messages := s.buildMessages(query, contextText)

	var result *driven.ChatResult
	err = withRetry(ctx, "generate", func() error {
		var genErr error
		result, genErr = s.llm.Chat(ctx, messages, driven.ChatOptions{
			MaxTokens:   s.settings.MaxOutputTokens,
			Temperature: s.settings.Temperature,
		})
		return genErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	model := result.Model
	if model == "" {
		model = s.llm.ModelName()
	}

	metadata := domain.GenerationMetadata{
		Model:               model,
		PromptTokens:        result.Usage.PromptTokens,
		CompletionTokens:    result.Usage.CompletionTokens,
		TotalTokens:         result.Usage.TotalTokens,
		RetrievedChunkCount: len(retrieved),
	}

	msgID, err := s.recordExchange(ctx, conv, query, result.Content, metadata, len(included))
	if err != nil {
		return nil, fmt.Errorf("%w: record conversation: %w", domain.ErrStorageUnavailable, err)
	}

	queryResult := &domain.QueryResult{
		ConversationID: conv.ID,
		MessageID:      msgID,
		Query:          query,
		Answer:         result.Content,
		Metadata:       metadata,
	}
	if opts.IncludeSources {
		queryResult.Sources = included
	}

	logger.Info("Answered with %d sources, %d tokens", len(included), metadata.TotalTokens)
	return queryResult, nil
}

// buildMessages assembles the chat messages for generation.
func (s *RAGService) buildMessages(query, contextText string) []driven.ChatMessage {
	system := s.loadPrompt(driven.PromptAnswerSystem, defaultAnswerSystemPrompt)

	var user string
	if contextText != "" {
		tmpl := s.loadPrompt(driven.PromptAnswerWithContext, defaultAnswerWithContextPrompt)
		user = fmt.Sprintf(tmpl, contextText, query)
	} else {
		tmpl := s.loadPrompt(driven.PromptAnswerNoContext, defaultAnswerNoContextPrompt)
		user = fmt.Sprintf(tmpl, query)
	}

	return []driven.ChatMessage{
		{Role: domain.RoleSystem, Content: system},
		{Role: domain.RoleUser, Content: user},
	}
}

// getOrCreateConversation resolves the conversation for a query.
func (s *RAGService) getOrCreateConversation(
	ctx context.Context, conversationID string,
) (*domain.Conversation, error) {
	if conversationID != "" {
		conv, err := s.convStore.GetConversation(ctx, conversationID)
		if err != nil {
			return nil, fmt.Errorf("conversation %s: %w", conversationID, err)
		}
		return conv, nil
	}

	now := time.Now().UTC()
	conv := &domain.Conversation{
		ID:        uuid.New().String(),
		Title:     "New Conversation",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.convStore.SaveConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("%w: create conversation: %w", domain.ErrStorageUnavailable, err)
	}
	return conv, nil
}

// recordExchange persists the user query and assistant answer as one
// message batch and bumps the conversation timestamp. Returns the
// assistant message ID.
func (s *RAGService) recordExchange(
	ctx context.Context,
	conv *domain.Conversation,
	query, answer string,
	metadata domain.GenerationMetadata,
	sourceCount int,
) (string, error) {
	now := time.Now().UTC()
	assistantID := uuid.New().String()

	messages := []domain.Message{
		{
			ID:             uuid.New().String(),
			ConversationID: conv.ID,
			Role:           domain.RoleUser,
			Content:        query,
			Metadata:       map[string]any{},
			CreatedAt:      now,
		},
		{
			ID:             assistantID,
			ConversationID: conv.ID,
			Role:           domain.RoleAssistant,
			Content:        answer,
			Metadata: map[string]any{
				"model":         metadata.Model,
				"prompt_tokens": metadata.PromptTokens,
				"total_tokens":  metadata.TotalTokens,
				"sources_count": sourceCount,
			},
			CreatedAt: now,
		},
	}

	if err := s.convStore.SaveMessages(ctx, messages); err != nil {
		return "", err
	}

	conv.UpdatedAt = now
	if err := s.convStore.SaveConversation(ctx, conv); err != nil {
		return "", err
	}

	return assistantID, nil
}

// loadPrompt loads a template from the store, falling back to the default.
func (s *RAGService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
