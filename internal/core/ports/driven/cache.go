package driven

import (
	"context"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// SummaryCache is the content-addressed store of generated summaries.
// Keys are derived with domain.SummaryCacheKey; entries are write-once and
// never evicted by the core.
type SummaryCache interface {
	// Get returns the cached entry for key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) (*domain.SummaryEntry, error)

	// Put stores a complete entry. Overwriting an existing key is allowed;
	// racing writers produce identical content so last-write-wins is fine.
	Put(ctx context.Context, entry domain.SummaryEntry) error

	// Stats returns a read-only snapshot of the cache.
	Stats(ctx context.Context) (domain.CacheStats, error)
}
