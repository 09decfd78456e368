package domain

import "fmt"

// Chunk is a bounded, sentence-aligned segment of transcript text.
// It is the unit of retrieval: chunks are embedded and stored in the
// per-video collection, and search returns projections of them.
//
// Chunks are immutable once created. The ID is deterministic for a given
// (video, index) pair so that re-ingesting the same transcript overwrites
// existing chunks instead of accumulating duplicates.
type Chunk struct {
	// ID is the deterministic chunk identifier, see ChunkID.
	ID string

	// VideoID identifies the video this chunk belongs to.
	// A chunk lives in exactly one video's collection.
	VideoID string

	// Text is the chunk content.
	Text string

	// Index is the ordinal position within the transcript.
	Index int

	// WordCount is the number of whitespace-separated words in Text.
	WordCount int

	// StartTime is the first timestamp marker ("hh:mm:ss") covered by this
	// chunk, empty when the transcript carried no timestamps.
	StartTime string

	// EndTime is the last timestamp marker covered by this chunk.
	EndTime string

	// Embedding is the dense vector representation, attached at insertion
	// time and never mutated afterwards.
	Embedding []float32
}

// ChunkID returns the deterministic identifier for a chunk of a video.
// Identical input positions always map to the same ID, which gives
// ingestion its overwrite semantics.
func ChunkID(videoID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", videoID, index)
}

// Metadata returns the read-only metadata projection carried by
// retrieval results.
func (c *Chunk) Metadata() ChunkMetadata {
	return ChunkMetadata{
		VideoID:    c.VideoID,
		ChunkIndex: c.Index,
		WordCount:  c.WordCount,
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
	}
}
