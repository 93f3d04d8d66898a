// Package sqlite provides SQLite-backed persistence for documents,
// chunks, conversations, and messages.
//
// All stores share a single database file with WAL journaling and
// foreign keys enabled. Chunk embeddings are stored as little-endian
// float32 blobs. Schema changes are applied through embedded SQL
// migrations at startup.
package sqlite
