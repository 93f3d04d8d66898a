// Package domain contains the core business entities and rules for askdocs.
//
// The domain layer has no dependencies on adapters or external libraries.
// It defines:
//   - Document and Chunk: the ingested knowledge base
//   - RetrievedChunk: a scored retrieval projection, scoped to one query
//   - Conversation and Message: chat history around queries
//   - QueryResult: the packaged answer with source citations
//   - RAGSettings: validated pipeline tuning values
//   - Domain errors: sentinel errors for business rule violations
package domain
