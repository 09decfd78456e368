// Package domain contains the core business entities and errors for Recap.
//
// Domain types have no dependencies on adapters or infrastructure.
// They represent the ubiquitous language of the application:
// transcripts are segmented into Chunks, chunks are grouped into per-video
// collections, retrieval produces RetrievalResults, and generated summaries
// are cached as SummaryEntries addressed by content hash.
package domain
