package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and
// providers.
const (
	// PromptChatSystem is the grounding system prompt for video chat.
	// The template expects a %s placeholder for the retrieved context.
	PromptChatSystem = "chat_system"

	// PromptSummaryPrefix prefixes the per-style summary prompt names.
	// The full name is PromptSummaryPrefix + style, e.g. "summary_bullet".
	// Each style's template is an independent (system, user) pair joined
	// by PromptSectionSeparator; the user part expects a %s placeholder
	// for the transcript.
	PromptSummaryPrefix = "summary_"

	// PromptSectionSeparator splits a stored summary prompt into its
	// system instruction and user instruction template.
	PromptSectionSeparator = "\n---\n"
)
