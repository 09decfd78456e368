package driving

import (
	"context"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// IndexService maintains the per-video retrieval index.
type IndexService interface {
	// Ingest segments a transcript, embeds the chunks in one batch, and
	// upserts them into the video's collection. Re-ingesting the same
	// transcript for the same video is idempotent: deterministic chunk IDs
	// overwrite instead of accumulating. Embedding or storage failure
	// propagates; a silently missing chunk would corrupt later answers.
	Ingest(ctx context.Context, videoID, transcript string) (int, error)

	// Search embeds the query and returns up to topK chunks of the
	// video's collection ordered by ascending distance. A missing or
	// empty collection, or a backend failure, yields an empty result
	// rather than an error.
	Search(ctx context.Context, videoID, query string, topK int) []domain.RetrievalResult

	// Delete removes the video's collection and reports whether it
	// existed.
	Delete(ctx context.Context, videoID string) (bool, error)

	// Count returns the number of chunks indexed for the video.
	Count(ctx context.Context, videoID string) (int, error)
}
