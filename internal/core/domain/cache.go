package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// SummaryEntry is a cached generated summary, addressed by content hash.
// Entries are write-once: a hit always short-circuits generation, and the
// core never expires or evicts them.
type SummaryEntry struct {
	// Key is the content-addressed cache key, see SummaryCacheKey.
	Key string `json:"key"`

	// Summary is the generated summary text.
	Summary string `json:"summary"`

	// Metadata describes how the entry was produced.
	Metadata SummaryMetadata `json:"metadata"`
}

// SummaryMetadata describes a cached summary.
type SummaryMetadata struct {
	// Style is the summary style the entry was generated with.
	Style SummaryStyle `json:"style"`

	// TextLength is the length in bytes of the source transcript.
	TextLength int `json:"text_length"`

	// SummaryLength is the length in bytes of the summary.
	SummaryLength int `json:"summary_length"`

	// CreatedAt is when the summary was generated.
	CreatedAt time.Time `json:"created_at"`
}

// SummaryCacheKey derives the cache key for a (transcript, style) pair.
// The hash is computed over the exact input text with no normalisation, so
// distinct raw transcripts never collide and a transcript's cache entry is
// always addressable by recomputing the same hash.
func SummaryCacheKey(text string, style SummaryStyle) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s_%s", hex.EncodeToString(sum[:]), style)
}

// CacheStats is a read-only snapshot of the summary cache.
type CacheStats struct {
	// Count is the number of cached summaries.
	Count int `json:"count"`

	// TotalBytes is the storage consumed by cached entries.
	TotalBytes int64 `json:"total_bytes"`

	// Styles lists the styles present in the cache.
	Styles []SummaryStyle `json:"styles"`
}
