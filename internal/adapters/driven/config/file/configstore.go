// Package file provides file-based configuration and prompt stores.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// Settings is the persisted application configuration.
type Settings struct {
	// Owner identifies whose credentials resolve by default. A single-user
	// install keeps the zero value and gets the "default" owner.
	Owner string `toml:"owner"`

	// DataDir overrides the default data directory (~/.recap/data).
	DataDir string `toml:"data_dir"`

	// LLM configures the generation backend.
	LLM domain.LLMSettings `toml:"llm"`

	// Embedding configures the embedding backend.
	Embedding domain.EmbeddingSettings `toml:"embedding"`

	// Segmenter configures transcript segmentation.
	Segmenter domain.SegmenterSettings `toml:"segmenter"`
}

// DefaultOwner is used when no owner is configured.
const DefaultOwner = "default"

// EffectiveOwner returns the configured owner or the default.
func (s *Settings) EffectiveOwner() string {
	if s.Owner == "" {
		return DefaultOwner
	}
	return s.Owner
}

// SettingsStore reads and writes the TOML configuration file.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewSettingsStore opens the configuration at the given config directory,
// creating an empty one when missing. If configDir is empty, it defaults
// to ~/.recap.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".recap")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &SettingsStore{filePath: filepath.Join(configDir, "config.toml")}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings and persists them.
func (s *SettingsStore) Update(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	return s.save()
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

func (s *SettingsStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, &s.settings); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
