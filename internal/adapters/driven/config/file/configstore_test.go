package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

// TestSettingsStoreDefaults verifies a fresh store starts empty with the
// default owner.
func TestSettingsStoreDefaults(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	settings := store.Settings()
	assert.Empty(t, settings.Owner)
	assert.Equal(t, DefaultOwner, settings.EffectiveOwner())
	assert.False(t, settings.LLM.IsConfigured())
}

// TestSettingsStoreRoundTrip verifies settings persist across store
// instances on the same directory.
func TestSettingsStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	first, err := NewSettingsStore(dir)
	require.NoError(t, err)

	err = first.Update(Settings{
		Owner: "alice",
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o-mini",
		},
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    "nomic-embed-text",
		},
		Segmenter: domain.SegmenterSettings{
			MaxChunkChars: 800,
			OverlapChars:  150,
		},
	})
	require.NoError(t, err)

	second, err := NewSettingsStore(dir)
	require.NoError(t, err)

	settings := second.Settings()
	assert.Equal(t, "alice", settings.EffectiveOwner())
	assert.Equal(t, domain.AIProviderOpenAI, settings.LLM.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, 800, settings.Segmenter.MaxChunkChars)
}
