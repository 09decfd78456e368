// Package memory provides an in-memory collection store, used in tests
// and as a fallback when no data directory is writable.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CollectionStore = (*Store)(nil)

// Store is an in-memory collection store. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]domain.Chunk
}

// NewStore creates an empty in-memory collection store.
func NewStore() *Store {
	return &Store{collections: make(map[string]map[string]domain.Chunk)}
}

// Upsert writes the chunks into the video's collection, replacing chunks
// that share an ID.
func (s *Store) Upsert(_ context.Context, videoID string, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[videoID]
	if !ok {
		coll = make(map[string]domain.Chunk, len(chunks))
		s.collections[videoID] = coll
	}
	for _, c := range chunks {
		coll[c.ID] = c
	}
	return nil
}

// Query returns the k nearest chunks by cosine distance, ascending.
func (s *Store) Query(_ context.Context, videoID string, embedding []float32, k int) ([]driven.CollectionHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.collections[videoID]
	hits := make([]driven.CollectionHit, 0, len(coll))
	for _, c := range coll {
		hits = append(hits, driven.CollectionHit{
			Chunk:    c,
			Distance: cosineDistance(embedding, c.Embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the number of chunks stored for the video.
func (s *Store) Count(_ context.Context, videoID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[videoID]), nil
}

// Exists reports whether the video has a collection.
func (s *Store) Exists(_ context.Context, videoID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[videoID]
	return ok, nil
}

// Delete removes the video's collection and reports whether it existed.
func (s *Store) Delete(_ context.Context, videoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.collections[videoID]
	delete(s.collections, videoID)
	return ok, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
