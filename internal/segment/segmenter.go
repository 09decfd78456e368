// Package segment splits transcript text into overlapping, sentence-aligned
// chunks suitable for embedding.
package segment

import (
	"regexp"
	"strings"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/logger"
)

// Segmenter splits transcripts into chunks for the vector index.
//
// The primary algorithm accumulates whole sentences into chunks up to a
// character budget and seeds each new chunk with a trailing-sentence
// overlap window from the previous one. Malformed text that breaks the
// primary path falls back to fixed-size word chunking with no overlap, so
// ingestion never fails outright on bad input.
type Segmenter struct {
	maxChunkChars    int
	overlapChars     int
	minSentenceChars int
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithMaxChunkChars sets the soft upper bound on chunk length in characters.
func WithMaxChunkChars(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.maxChunkChars = n
		}
	}
}

// WithOverlapChars sets the character budget for the sentence overlap
// between consecutive chunks. Zero disables overlap.
func WithOverlapChars(n int) Option {
	return func(s *Segmenter) {
		if n >= 0 {
			s.overlapChars = n
		}
	}
}

// WithMinSentenceChars sets the minimum sentence length kept during
// splitting. Shorter fragments are treated as noise and discarded.
func WithMinSentenceChars(n int) Option {
	return func(s *Segmenter) {
		if n >= 0 {
			s.minSentenceChars = n
		}
	}
}

// New creates a segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		maxChunkChars:    domain.DefaultMaxChunkChars,
		overlapChars:     domain.DefaultOverlapChars,
		minSentenceChars: domain.DefaultMinSentenceChars,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlapChars >= s.maxChunkChars {
		s.overlapChars = s.maxChunkChars / 4
	}

	return s
}

// FromSettings creates a segmenter from persisted settings.
func FromSettings(settings domain.SegmenterSettings) *Segmenter {
	settings = settings.Normalised()
	return New(
		WithMaxChunkChars(settings.MaxChunkChars),
		WithOverlapChars(settings.OverlapChars),
		WithMinSentenceChars(settings.MinSentenceChars),
	)
}

// Chunk splits text into ordered chunks for a video. Chunk IDs are
// deterministic per (video, index), so re-segmenting the same transcript
// produces identical IDs and ingestion stays idempotent.
//
// Any failure in the sentence-aligned algorithm is swallowed and the
// word-count fallback runs instead; resilience to malformed transcripts is
// worth the occasional loss of chunk quality.
func (s *Segmenter) Chunk(videoID, text string) (chunks []domain.Chunk) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("sentence chunking failed (%v), using fallback chunker", r)
			chunks = s.fallbackChunks(videoID, text)
		}
	}()

	cleaned := cleanText(text)
	sentences := s.splitSentences(cleaned)
	logger.Debug("segmenter: %d sentences from %d chars", len(sentences), len(cleaned))

	if len(sentences) == 0 {
		// No terminal punctuation or nothing survived the fragment filter.
		return s.fallbackChunks(videoID, text)
	}

	var current []string
	currentLen := 0

	for _, sentence := range sentences {
		if currentLen+len(sentence) > s.maxChunkChars && len(current) > 0 {
			chunks = append(chunks, newChunk(videoID, len(chunks), strings.Join(current, " ")))

			overlap := s.overlapWindow(current)
			current = append(overlap, sentence)
			currentLen = 0
			for _, o := range current {
				currentLen += len(o)
			}
			continue
		}

		current = append(current, sentence)
		currentLen += len(sentence)
	}

	if len(current) > 0 {
		chunks = append(chunks, newChunk(videoID, len(chunks), strings.Join(current, " ")))
	}

	return chunks
}

// overlapWindow selects whole trailing sentences of a closed chunk to seed
// the next one, walking backwards and stopping before the overlap budget is
// exceeded. At least the final sentence is always included so consecutive
// chunks share context even when that sentence alone exceeds the budget.
func (s *Segmenter) overlapWindow(sentences []string) []string {
	if s.overlapChars <= 0 || len(sentences) == 0 {
		return nil
	}

	var window []string
	total := 0

	for i := len(sentences) - 1; i >= 0; i-- {
		if total+len(sentences[i]) > s.overlapChars {
			break
		}
		window = append([]string{sentences[i]}, window...)
		total += len(sentences[i])
	}

	if len(window) == 0 {
		window = []string{sentences[len(sentences)-1]}
	}

	return window
}

// splitSentences splits cleaned text on terminal punctuation, dropping
// fragments at or below the minimum length.
func (s *Segmenter) splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		current.Reset()
		if len(sentence) > s.minSentenceChars {
			sentences = append(sentences, sentence)
		}
	}

	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return sentences
}

// fallbackChunks is the resilience path: fixed-size word-count chunking
// with no overlap.
func (s *Segmenter) fallbackChunks(videoID, text string) []domain.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	for start := 0; start < len(words); start += s.maxChunkChars {
		end := start + s.maxChunkChars
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, newChunk(videoID, len(chunks), strings.Join(words[start:end], " ")))
	}

	return chunks
}

// newChunk builds a chunk with its deterministic ID, word count, and any
// timestamp markers present in the text.
func newChunk(videoID string, index int, text string) domain.Chunk {
	chunk := domain.Chunk{
		ID:        domain.ChunkID(videoID, index),
		VideoID:   videoID,
		Text:      text,
		Index:     index,
		WordCount: len(strings.Fields(text)),
	}

	if stamps := ExtractTimestamps(text); len(stamps) > 0 {
		chunk.StartTime = stamps[0]
		chunk.EndTime = stamps[len(stamps)-1]
	}

	return chunk
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?;:\-()]`)
)

// cleanText collapses whitespace and strips characters outside the
// allow-list of alphanumerics and basic punctuation. Auto-generated
// transcripts carry stray artifacts that otherwise leak into chunks.
func cleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = disallowedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
