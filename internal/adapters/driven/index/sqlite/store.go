// Package sqlite provides a SQLite-backed collection store for embedded
// transcript chunks.
//
// Embeddings are stored as little-endian float32 blobs next to the chunk
// text. Similarity search loads the video's collection and ranks it by
// cosine distance in process; collections are per-video and small enough
// that a brute-force scan beats maintaining an index structure.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CollectionStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id         TEXT PRIMARY KEY,
	video_id   TEXT NOT NULL,
	idx        INTEGER NOT NULL,
	text       TEXT NOT NULL,
	word_count INTEGER NOT NULL DEFAULT 0,
	start_time TEXT NOT NULL DEFAULT '',
	end_time   TEXT NOT NULL DEFAULT '',
	embedding  BLOB,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chunks_video ON chunks(video_id);
`

// Store is a SQLite-backed collection store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a collection store at the given data directory. If
// dataDir is empty, it defaults to ~/.recap/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recap", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode keeps concurrent readers unblocked during ingestion.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Upsert writes the chunks into the video's collection, replacing rows
// that share a chunk ID. All writes land in one transaction.
func (s *Store) Upsert(ctx context.Context, videoID string, chunks []domain.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, video_id, idx, text, word_count, start_time, end_time, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			word_count = excluded.word_count,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		blob := float32SliceToBytes(c.Embedding)
		if _, err := stmt.ExecContext(ctx,
			c.ID, videoID, c.Index, c.Text, c.WordCount, c.StartTime, c.EndTime, blob); err != nil {
			return fmt.Errorf("saving chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Query returns the k chunks of the video's collection nearest to the
// embedding, ordered by ascending cosine distance.
func (s *Store) Query(ctx context.Context, videoID string, embedding []float32, k int) ([]driven.CollectionHit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, idx, text, word_count, start_time, end_time, embedding
		FROM chunks WHERE video_id = ?
	`, videoID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var hits []driven.CollectionHit
	for rows.Next() {
		var c domain.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.Index, &c.Text, &c.WordCount,
			&c.StartTime, &c.EndTime, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		c.VideoID = videoID
		c.Embedding = bytesToFloat32Slice(blob)

		hits = append(hits, driven.CollectionHit{
			Chunk:    c,
			Distance: cosineDistance(embedding, c.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the number of chunks stored for the video.
func (s *Store) Count(ctx context.Context, videoID string) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks WHERE video_id = ?`, videoID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// Exists reports whether the video has a collection.
func (s *Store) Exists(ctx context.Context, videoID string) (bool, error) {
	var one int
	row := s.db.QueryRowContext(ctx, `SELECT 1 FROM chunks WHERE video_id = ? LIMIT 1`, videoID)
	err := row.Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking collection: %w", err)
	}
	return true, nil
}

// Delete removes the video's collection and reports whether it existed.
func (s *Store) Delete(ctx context.Context, videoID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE video_id = ?`, videoID)
	if err != nil {
		return false, fmt.Errorf("deleting collection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return affected > 0, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// cosineDistance is 1 minus the cosine similarity. Zero vectors are
// maximally distant.
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

// float32SliceToBytes converts a []float32 to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
