// Package services implements the core RAG pipeline behind the driving
// ports: retrieval, context assembly, and end-to-end orchestration of
// ingestion and querying.
package services
