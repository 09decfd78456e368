package domain

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderGemini, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// LLMSettings configures the generation backend.
// The provider is selected once at configuration time; there is no
// per-request provider branching.
type LLMSettings struct {
	// Provider is the generation provider.
	Provider AIProvider `toml:"provider"`

	// Model is the model name, provider-specific default when empty.
	Model string `toml:"model"`

	// BaseURL overrides the provider endpoint (local instances, proxies).
	BaseURL string `toml:"base_url"`

	// APIKey is a process-wide key. When empty, cloud providers resolve
	// the requesting owner's default credential instead.
	APIKey string `toml:"api_key"`
}

// IsConfigured returns true if the settings name a valid provider.
func (s *LLMSettings) IsConfigured() bool {
	return s != nil && s.Provider.IsValid()
}

// EmbeddingSettings configures the embedding backend.
type EmbeddingSettings struct {
	// Provider is the embedding provider.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey is the API key for cloud providers.
	APIKey string `toml:"api_key"`
}

// IsConfigured returns true if the settings name a valid provider.
func (s *EmbeddingSettings) IsConfigured() bool {
	return s != nil && s.Provider.IsValid()
}

// Default segmentation parameters. These thresholds are heuristics carried
// from the transcript pipeline this tool grew out of, exposed as settings
// rather than hard-coded.
const (
	DefaultMaxChunkChars    = 1000
	DefaultOverlapChars     = 200
	DefaultMinSentenceChars = 10
)

// SegmenterSettings configures transcript segmentation.
type SegmenterSettings struct {
	// MaxChunkChars is the soft upper bound on chunk length.
	MaxChunkChars int `toml:"max_chunk_chars"`

	// OverlapChars is the budget for the sentence overlap between
	// consecutive chunks.
	OverlapChars int `toml:"overlap_chars"`

	// MinSentenceChars filters out sentence fragments shorter than this
	// during splitting.
	MinSentenceChars int `toml:"min_sentence_chars"`
}

// Normalised returns a copy with zero values replaced by defaults and the
// overlap clamped below the chunk size.
func (s SegmenterSettings) Normalised() SegmenterSettings {
	if s.MaxChunkChars <= 0 {
		s.MaxChunkChars = DefaultMaxChunkChars
	}
	if s.OverlapChars < 0 {
		s.OverlapChars = 0
	}
	if s.OverlapChars == 0 {
		s.OverlapChars = DefaultOverlapChars
	}
	if s.MinSentenceChars <= 0 {
		s.MinSentenceChars = DefaultMinSentenceChars
	}
	if s.OverlapChars >= s.MaxChunkChars {
		s.OverlapChars = s.MaxChunkChars / 4
	}
	return s
}
