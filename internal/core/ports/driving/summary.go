package driving

import (
	"context"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// SummaryService generates cached, style-specific transcript summaries.
type SummaryService interface {
	// Summarize returns a summary of the transcript in the given style on
	// behalf of an owner. Unknown styles fall back to comprehensive.
	//
	// Failures are distinguishable with errors.Is:
	//   - domain.ErrEmptyTranscript: whitespace-only input, checked before
	//     the cache or any credential lookup
	//   - domain.ErrNoCredential: no usable credential for the owner and
	//     the configured provider; generation was never attempted
	//   - domain.ErrGenerationFailed: the backend errored or returned an
	//     empty response; nothing was cached
	Summarize(ctx context.Context, ownerID, transcript string, style domain.SummaryStyle) (string, error)

	// CacheStats returns a read-only snapshot of the summary cache.
	CacheStats(ctx context.Context) (domain.CacheStats, error)
}
