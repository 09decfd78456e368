package driven

import (
	"context"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// CollectionStore persists per-video chunk collections and performs
// nearest-neighbour search within one collection.
//
// A collection holds the (chunk, embedding) pairs of exactly one video and
// is created lazily on first upsert. Queries never cross collection
// boundaries.
type CollectionStore interface {
	// Upsert inserts or overwrites chunks (with embeddings attached) in
	// the video's collection, keyed by chunk ID. The collection is created
	// if it does not exist.
	Upsert(ctx context.Context, videoID string, chunks []domain.Chunk) error

	// Query returns up to k chunks of the video's collection nearest to
	// the embedding, ordered by ascending distance. A missing or empty
	// collection yields no hits and no error.
	Query(ctx context.Context, videoID string, embedding []float32, k int) ([]CollectionHit, error)

	// Count returns the number of chunks in the video's collection.
	// A missing collection counts as zero.
	Count(ctx context.Context, videoID string) (int, error)

	// Exists reports whether the video's collection exists.
	Exists(ctx context.Context, videoID string) (bool, error)

	// Delete removes the video's collection entirely and reports whether
	// it existed.
	Delete(ctx context.Context, videoID string) (bool, error)

	// Close releases resources.
	Close() error
}

// CollectionHit is a single nearest-neighbour match.
type CollectionHit struct {
	// Chunk is the matched chunk, embedding included.
	Chunk domain.Chunk

	// Distance is the cosine distance to the query (0 = identical).
	Distance float64
}
