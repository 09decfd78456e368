package domain

// ChunkMetadata is the source metadata attached to a retrieval result.
type ChunkMetadata struct {
	// VideoID is the owning video.
	VideoID string `json:"video_id"`

	// ChunkIndex is the chunk's ordinal position within the transcript.
	ChunkIndex int `json:"chunk_index"`

	// WordCount is the chunk's word count.
	WordCount int `json:"word_count"`

	// StartTime is the first timestamp covered by the chunk, if known.
	StartTime string `json:"start_time,omitempty"`

	// EndTime is the last timestamp covered by the chunk, if known.
	EndTime string `json:"end_time,omitempty"`
}

// RetrievalResult is a read-only projection of a chunk plus its similarity
// distance to a query. Results are constructed fresh per query and never
// persisted.
type RetrievalResult struct {
	// ID is the matched chunk's identifier.
	ID string `json:"id"`

	// Text is the matched chunk's content.
	Text string `json:"text"`

	// Metadata carries the chunk's source metadata for citation.
	Metadata ChunkMetadata `json:"metadata"`

	// Distance is the similarity distance to the query.
	// Smaller means more similar; results are ordered ascending.
	Distance float64 `json:"distance"`
}
