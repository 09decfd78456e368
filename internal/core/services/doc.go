// Package services implements the core use cases: transcript ingestion and
// retrieval (IndexService), retrieval-augmented chat (ChatService), and
// cached summarization (SummaryService). Services depend only on domain
// types and driven ports; adapters are injected at construction.
package services
