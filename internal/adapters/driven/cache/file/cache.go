// Package file provides a file-backed summary cache. Each entry is one
// JSON file named by its content-addressed key, so the filesystem is the
// index and entries survive restarts for free.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.SummaryCache = (*Cache)(nil)

const entryExt = ".json"

// Cache stores summaries as JSON files under a directory.
type Cache struct {
	dir string

	// mu serialises writes; reads go straight to the filesystem.
	mu sync.Mutex
}

// NewCache creates a summary cache rooted at dir. If dir is empty, it
// defaults to ~/.recap/cache/summaries.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".recap", "cache", "summaries")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns the cached entry for key, or domain.ErrNotFound.
func (c *Cache) Get(_ context.Context, key string) (*domain.SummaryEntry, error) {
	data, err := os.ReadFile(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry domain.SummaryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// A corrupt entry is as good as absent; the caller regenerates and
		// overwrites it.
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// Put stores the entry, replacing any previous file for the key. Writes
// go through a temp file and rename so readers never see a partial entry.
func (c *Cache) Put(_ context.Context, entry domain.SummaryEntry) error {
	if entry.Key == "" {
		return fmt.Errorf("%w: cache entry has no key", domain.ErrInvalidInput)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.entryPath(entry.Key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming cache entry: %w", err)
	}
	return nil
}

// Stats walks the cache directory and reports entry count, storage used,
// and the styles present.
func (c *Cache) Stats(_ context.Context) (domain.CacheStats, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("reading cache directory: %w", err)
	}

	stats := domain.CacheStats{}
	seen := make(map[domain.SummaryStyle]bool)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, entryExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		stats.Count++
		stats.TotalBytes += info.Size()

		if style, ok := styleFromKey(strings.TrimSuffix(name, entryExt)); ok && !seen[style] {
			seen[style] = true
			stats.Styles = append(stats.Styles, style)
		}
	}

	sort.Slice(stats.Styles, func(i, j int) bool {
		return stats.Styles[i] < stats.Styles[j]
	})
	return stats, nil
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+entryExt)
}

// styleFromKey recovers the style from a "hash_style" cache key.
func styleFromKey(key string) (domain.SummaryStyle, bool) {
	i := strings.LastIndex(key, "_")
	if i < 0 {
		return "", false
	}
	style := domain.SummaryStyle(key[i+1:])
	return style, style.IsValid()
}
