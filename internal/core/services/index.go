package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
	"github.com/recap-labs/recap-cli/internal/core/ports/driving"
	"github.com/recap-labs/recap-cli/internal/logger"
	"github.com/recap-labs/recap-cli/internal/segment"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// DefaultTopK is the number of results returned when the caller does not
// specify one.
const DefaultTopK = 5

// IndexService maintains per-video collections of embedded transcript
// chunks and performs similarity search within them.
//
// Operations on different video IDs are independent; the service is safe
// for concurrent use.
type IndexService struct {
	store     driven.CollectionStore
	embedder  driven.EmbeddingService
	segmenter *segment.Segmenter
	limiter   *rate.Limiter

	// known memoizes positive collection existence so repeated searches
	// skip a store round trip. Entries are dropped on Delete; absence is
	// never memoized because a collection may be created at any time.
	mu    sync.RWMutex
	known map[string]bool
}

// NewIndexService creates a new index service.
func NewIndexService(
	store driven.CollectionStore,
	embedder driven.EmbeddingService,
	segmenter *segment.Segmenter,
) *IndexService {
	if segmenter == nil {
		segmenter = segment.New()
	}
	return &IndexService{
		store:     store,
		embedder:  embedder,
		segmenter: segmenter,
		known:     make(map[string]bool),
	}
}

// SetRateLimiter throttles embedding requests. Batch ingestion of long
// transcripts otherwise bursts straight into provider rate limits.
func (s *IndexService) SetRateLimiter(l *rate.Limiter) {
	s.limiter = l
}

// Ingest segments the transcript, embeds all chunk texts in one batch
// call, and upserts them into the video's collection. Deterministic chunk
// IDs make re-ingestion idempotent.
//
// Failures propagate: a partially indexed transcript silently corrupts
// later answers, so the caller must see them.
func (s *IndexService) Ingest(ctx context.Context, videoID, transcript string) (int, error) {
	if s.store == nil {
		return 0, domain.ErrIndexUnavailable
	}
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Ingest")
	logger.Debug("video=%s transcript=%d bytes", videoID, len(transcript))

	chunks := s.segmenter.Chunk(videoID, transcript)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: video %s", domain.ErrEmptyTranscript, videoID)
	}
	logger.Debug("segmented into %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks for video %s: %w", videoID, err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embed chunks for video %s: got %d embeddings for %d chunks",
			videoID, len(embeddings), len(chunks))
	}

	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	if err := s.store.Upsert(ctx, videoID, chunks); err != nil {
		return 0, fmt.Errorf("store chunks for video %s: %w", videoID, err)
	}

	s.mu.Lock()
	s.known[videoID] = true
	s.mu.Unlock()

	logger.Info("indexed %d chunks for video %s", len(chunks), videoID)
	return len(chunks), nil
}

// Search embeds the query and returns the topK nearest chunks of the
// video's collection, most similar first.
//
// Search degrades instead of failing: a missing collection, an embedding
// error, or a store error all yield empty results and a log line. Callers
// treat "no results" as "answer from no context".
func (s *IndexService) Search(ctx context.Context, videoID, query string, topK int) []domain.RetrievalResult {
	if s.store == nil || s.embedder == nil {
		logger.Warn("search unavailable: index not fully configured")
		return nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Section("Search")
	logger.Debug("video=%s query=%q topK=%d", videoID, query, topK)

	if !s.collectionExists(ctx, videoID) {
		logger.Debug("no collection for video %s", videoID)
		return nil
	}

	if err := s.wait(ctx); err != nil {
		logger.Warn("rate limiter: %v", err)
		return nil
	}
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("query embedding failed: %v", err)
		return nil
	}

	hits, err := s.store.Query(ctx, videoID, embedding, topK)
	if err != nil {
		logger.Warn("collection query failed: %v", err)
		return nil
	}
	logger.Debug("%d hits", len(hits))

	results := make([]domain.RetrievalResult, len(hits))
	for i, hit := range hits {
		results[i] = domain.RetrievalResult{
			ID:       hit.Chunk.ID,
			Text:     hit.Chunk.Text,
			Metadata: hit.Chunk.Metadata(),
			Distance: hit.Distance,
		}
	}

	return results
}

// Delete removes the video's collection and invalidates its memoized
// handle, so a stale positive can never survive a delete.
func (s *IndexService) Delete(ctx context.Context, videoID string) (bool, error) {
	if s.store == nil {
		return false, domain.ErrIndexUnavailable
	}

	s.mu.Lock()
	delete(s.known, videoID)
	s.mu.Unlock()

	existed, err := s.store.Delete(ctx, videoID)
	if err != nil {
		return false, fmt.Errorf("delete collection for video %s: %w", videoID, err)
	}

	logger.Info("deleted collection for video %s (existed=%t)", videoID, existed)
	return existed, nil
}

// Count returns the number of chunks indexed for the video.
func (s *IndexService) Count(ctx context.Context, videoID string) (int, error) {
	if s.store == nil {
		return 0, domain.ErrIndexUnavailable
	}
	return s.store.Count(ctx, videoID)
}

// collectionExists consults the memo before the store and memoizes only
// positive answers.
func (s *IndexService) collectionExists(ctx context.Context, videoID string) bool {
	s.mu.RLock()
	ok := s.known[videoID]
	s.mu.RUnlock()
	if ok {
		return true
	}

	exists, err := s.store.Exists(ctx, videoID)
	if err != nil {
		logger.Warn("collection existence check failed: %v", err)
		return false
	}
	if exists {
		s.mu.Lock()
		s.known[videoID] = true
		s.mu.Unlock()
	}
	return exists
}

// wait blocks on the rate limiter when one is configured.
func (s *IndexService) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}
