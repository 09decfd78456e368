package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
)

// --- Mock implementations of driven ports ---

// mockEmbedder implements driven.EmbeddingService with a toy hash
// embedding so tests get stable, distinguishable vectors.
type mockEmbedder struct {
	mu         sync.Mutex
	embedCalls int
	batchCalls int
	embedErr   error
	batchErr   error
}

func (m *mockEmbedder) vector(text string) []float32 {
	// Crude bag-of-letters vector; similar texts land near each other.
	v := make([]float32, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			v[r-'a']++
		}
	}
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls++
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int               { return 26 }
func (m *mockEmbedder) ModelName() string             { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error  { return nil }
func (m *mockEmbedder) Close() error                  { return nil }

// mockCollectionStore implements driven.CollectionStore in memory with
// call counting for memoization assertions.
type mockCollectionStore struct {
	mu          sync.Mutex
	collections map[string]map[string]domain.Chunk
	existsCalls int
	upsertErr   error
	queryErr    error
}

func newMockCollectionStore() *mockCollectionStore {
	return &mockCollectionStore{collections: make(map[string]map[string]domain.Chunk)}
}

func (m *mockCollectionStore) Upsert(_ context.Context, videoID string, chunks []domain.Chunk) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	coll, ok := m.collections[videoID]
	if !ok {
		coll = make(map[string]domain.Chunk)
		m.collections[videoID] = coll
	}
	for _, c := range chunks {
		coll[c.ID] = c
	}
	return nil
}

func (m *mockCollectionStore) Query(
	_ context.Context, videoID string, embedding []float32, k int,
) ([]driven.CollectionHit, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var hits []driven.CollectionHit
	for _, c := range m.collections[videoID] {
		hits = append(hits, driven.CollectionHit{Chunk: c, Distance: cosineDistance(embedding, c.Embedding)})
	}
	for i := 0; i < len(hits); i++ {
		for j := i + 1; j < len(hits); j++ {
			if hits[j].Distance < hits[i].Distance {
				hits[i], hits[j] = hits[j], hits[i]
			}
		}
	}
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func cosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(sqrt(na)*sqrt(nb))
}

func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	guess := x
	for i := 0; i < 32; i++ {
		guess = (guess + x/guess) / 2
	}
	return guess
}

func (m *mockCollectionStore) Count(_ context.Context, videoID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections[videoID]), nil
}

func (m *mockCollectionStore) Exists(_ context.Context, videoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.existsCalls++
	_, ok := m.collections[videoID]
	return ok, nil
}

func (m *mockCollectionStore) Delete(_ context.Context, videoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.collections[videoID]
	delete(m.collections, videoID)
	return ok, nil
}

func (m *mockCollectionStore) Close() error { return nil }

// mockLLM implements driven.LLMService, recording calls.
type mockLLM struct {
	mu        sync.Mutex
	chatCalls int
	response  string
	err       error
	lastMsgs  []driven.ChatMessage
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return m.Chat(ctx, []driven.ChatMessage{{Role: "user", Content: prompt}}, driven.ChatOptions{})
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatCalls++
	m.lastMsgs = messages
	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}
	return "mock answer", nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCalls
}

// mockIndex implements driving.IndexService with canned search results.
type mockIndex struct {
	results []domain.RetrievalResult
}

func (m *mockIndex) Ingest(_ context.Context, _, _ string) (int, error) { return 0, nil }

func (m *mockIndex) Search(_ context.Context, _, _ string, _ int) []domain.RetrievalResult {
	return m.results
}

func (m *mockIndex) Delete(_ context.Context, _ string) (bool, error) { return false, nil }
func (m *mockIndex) Count(_ context.Context, _ string) (int, error)   { return len(m.results), nil }

// mockCache implements driven.SummaryCache in memory.
type mockCache struct {
	mu      sync.Mutex
	entries map[string]domain.SummaryEntry
	gets    int
	puts    int
	getErr  error
	putErr  error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]domain.SummaryEntry)}
}

func (m *mockCache) Get(_ context.Context, key string) (*domain.SummaryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	entry, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

func (m *mockCache) Put(_ context.Context, entry domain.SummaryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[entry.Key] = entry
	return nil
}

func (m *mockCache) Stats(_ context.Context) (domain.CacheStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := domain.CacheStats{Count: len(m.entries)}
	seen := make(map[domain.SummaryStyle]bool)
	for _, e := range m.entries {
		stats.TotalBytes += int64(len(e.Summary))
		if !seen[e.Metadata.Style] {
			seen[e.Metadata.Style] = true
			stats.Styles = append(stats.Styles, e.Metadata.Style)
		}
	}
	return stats, nil
}

func (m *mockCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// mockCredentials implements driven.CredentialStore with call counting.
type mockCredentials struct {
	mu        sync.Mutex
	secrets   map[string]string // ownerID|provider -> secret
	hasCalls  int
	lookupErr error
}

func newMockCredentials() *mockCredentials {
	return &mockCredentials{secrets: make(map[string]string)}
}

func credKey(ownerID string, provider domain.AIProvider) string {
	return fmt.Sprintf("%s|%s", ownerID, provider)
}

func (m *mockCredentials) set(ownerID string, provider domain.AIProvider, secret string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[credKey(ownerID, provider)] = secret
}

func (m *mockCredentials) HasCredential(
	_ context.Context, ownerID string, provider domain.AIProvider,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasCalls++
	if m.lookupErr != nil {
		return false, m.lookupErr
	}
	_, ok := m.secrets[credKey(ownerID, provider)]
	return ok, nil
}

func (m *mockCredentials) DefaultSecret(
	_ context.Context, ownerID string, provider domain.AIProvider,
) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	secret, ok := m.secrets[credKey(ownerID, provider)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return secret, nil
}

func (m *mockCredentials) checks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasCalls
}
