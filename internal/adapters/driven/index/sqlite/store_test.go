package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testChunks(videoID string) []domain.Chunk {
	return []domain.Chunk{
		{
			ID:        domain.ChunkID(videoID, 0),
			VideoID:   videoID,
			Text:      "Introduction to the topic",
			Index:     0,
			WordCount: 4,
			StartTime: "00:00:05",
			Embedding: []float32{1, 0, 0},
		},
		{
			ID:        domain.ChunkID(videoID, 1),
			VideoID:   videoID,
			Text:      "Deep dive into details",
			Index:     1,
			WordCount: 4,
			Embedding: []float32{0, 1, 0},
		},
		{
			ID:        domain.ChunkID(videoID, 2),
			VideoID:   videoID,
			Text:      "Closing remarks",
			Index:     2,
			WordCount: 2,
			Embedding: []float32{0.9, 0.1, 0},
		},
	}
}

// TestStoreRoundTrip verifies upserted chunks come back through Query
// with fields and embeddings intact.
func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "video-1", testChunks("video-1")))

	hits, err := store.Query(ctx, "video-1", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	// Nearest first: exact match, then the 0.9/0.1 vector, then orthogonal.
	assert.Equal(t, "video-1_chunk_0", hits[0].Chunk.ID)
	assert.InDelta(t, 0, hits[0].Distance, 1e-6)
	assert.Equal(t, "video-1_chunk_2", hits[1].Chunk.ID)
	assert.Equal(t, "video-1_chunk_1", hits[2].Chunk.ID)

	assert.Equal(t, "Introduction to the topic", hits[0].Chunk.Text)
	assert.Equal(t, "00:00:05", hits[0].Chunk.StartTime)
	assert.Equal(t, "video-1", hits[0].Chunk.VideoID)
	assert.Equal(t, []float32{1, 0, 0}, hits[0].Chunk.Embedding)
}

// TestStoreUpsertReplaces verifies that re-upserting a chunk ID replaces
// the row instead of duplicating it.
func TestStoreUpsertReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := testChunks("video-1")
	require.NoError(t, store.Upsert(ctx, "video-1", chunks))

	chunks[0].Text = "Rewritten introduction"
	chunks[0].Embedding = []float32{0, 0, 1}
	require.NoError(t, store.Upsert(ctx, "video-1", chunks))

	count, err := store.Count(ctx, "video-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	hits, err := store.Query(ctx, "video-1", []float32{0, 0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Rewritten introduction", hits[0].Chunk.Text)
}

// TestStoreQueryScopedToVideo verifies queries never return another
// video's chunks.
func TestStoreQueryScopedToVideo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "video-a", testChunks("video-a")))
	require.NoError(t, store.Upsert(ctx, "video-b", testChunks("video-b")))

	hits, err := store.Query(ctx, "video-a", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	for _, hit := range hits {
		assert.Equal(t, "video-a", hit.Chunk.VideoID)
	}
}

// TestStoreQueryLimit verifies the k bound is honoured.
func TestStoreQueryLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "video-1", testChunks("video-1")))

	hits, err := store.Query(ctx, "video-1", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

// TestStoreExistsAndDelete verifies the collection lifecycle.
func TestStoreExistsAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "video-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Upsert(ctx, "video-1", testChunks("video-1")))

	exists, err = store.Exists(ctx, "video-1")
	require.NoError(t, err)
	assert.True(t, exists)

	existed, err := store.Delete(ctx, "video-1")
	require.NoError(t, err)
	assert.True(t, existed)

	exists, err = store.Exists(ctx, "video-1")
	require.NoError(t, err)
	assert.False(t, exists)

	existed, err = store.Delete(ctx, "video-1")
	require.NoError(t, err)
	assert.False(t, existed)
}

// TestStoreQueryEmptyCollection verifies querying an unknown video is not
// an error.
func TestStoreQueryEmptyCollection(t *testing.T) {
	store := newTestStore(t)

	hits, err := store.Query(context.Background(), "missing", []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

// TestFloat32BlobRoundTrip verifies the embedding codec.
func TestFloat32BlobRoundTrip(t *testing.T) {
	vec := []float32{0.1, -2.5, 3.75, 0}

	assert.Equal(t, vec, bytesToFloat32Slice(float32SliceToBytes(vec)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

// TestCosineDistance verifies the distance function on known vectors.
func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, cosineDistance([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 1, cosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 2, cosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.InDelta(t, 1, cosineDistance([]float32{0, 0}, []float32{1, 0}), 1e-9)
}
