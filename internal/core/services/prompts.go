package services

import (
	"fmt"
	"strings"

	"github.com/recap-labs/recap-cli/internal/core/domain"
	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
)

// stylePrompt is a summary prompt pair: the system instruction and the
// user instruction template (with a %s placeholder for the transcript).
type stylePrompt struct {
	system string
	user   string
}

// stylePrompts maps every summary style to its own fully written prompt
// pair. Styles are not parameter-substituted variants of one shared
// template: tone and structure differ qualitatively per style, so each
// template stands alone.
var stylePrompts = map[domain.SummaryStyle]stylePrompt{
	domain.StyleComprehensive: {
		system: "You are an expert content summarizer. Create a comprehensive summary that captures all key points, main arguments, and important details from the transcript. Focus on accuracy and completeness while maintaining readability.",
		user:   "Please provide a comprehensive summary of this video transcript:\n\n%s",
	},
	domain.StyleBullet: {
		system: "You are an expert content summarizer. Create a bullet-point summary that highlights the main points and key takeaways from the transcript. Use clear, concise bullet points.",
		user:   "Please provide a bullet-point summary of this video transcript:\n\n%s",
	},
	domain.StyleInsights: {
		system: "You are an expert content analyst. Extract the most important insights, key learnings, and actionable takeaways from the transcript. Focus on what's most valuable for the audience.",
		user:   "Please extract key insights and learnings from this video transcript:\n\n%s",
	},
	domain.StyleTimeline: {
		system: "You are an expert content organizer. Create a chronological timeline of events, topics, or points discussed in the transcript. Organize information in a logical flow.",
		user:   "Please create a timeline summary of this video transcript:\n\n%s",
	},
	domain.StyleQA: {
		system: "You are an expert content analyst. Create a Q&A format summary by identifying the main questions or topics addressed in the transcript and providing clear answers.",
		user:   "Please create a Q&A summary of this video transcript:\n\n%s",
	},
	domain.StyleBrief: {
		system: "You are an expert content summarizer. Create a brief, concise summary that captures the essence of the transcript in just a few sentences. Focus on the core message.",
		user:   "Please provide a brief summary of this video transcript:\n\n%s",
	},
}

// validateStylePrompts checks the registry covers every style with both
// sections present. Called at service construction so a broken registry
// fails at startup, not mid-request.
func validateStylePrompts() error {
	for _, style := range domain.Styles() {
		p, ok := stylePrompts[style]
		if !ok {
			return fmt.Errorf("%w: no prompt registered for style %q", domain.ErrInvalidInput, style)
		}
		if p.system == "" || p.user == "" {
			return fmt.Errorf("%w: incomplete prompt for style %q", domain.ErrInvalidInput, style)
		}
		if !strings.Contains(p.user, "%s") {
			return fmt.Errorf("%w: prompt for style %q lacks a transcript placeholder", domain.ErrInvalidInput, style)
		}
	}
	return nil
}

// promptForStyle returns the prompt pair for a style, preferring an
// override from the prompt store when one is configured. Overrides use
// the name "summary_<style>" with the system and user sections separated
// by driven.PromptSectionSeparator.
func promptForStyle(store driven.PromptStore, style domain.SummaryStyle) stylePrompt {
	fallback := stylePrompts[style]
	if store == nil {
		return fallback
	}

	raw, err := store.Load(driven.PromptSummaryPrefix + style.String())
	if err != nil {
		return fallback
	}

	system, user, found := strings.Cut(raw, driven.PromptSectionSeparator)
	if !found || strings.TrimSpace(system) == "" || !strings.Contains(user, "%s") {
		return fallback
	}
	return stylePrompt{system: strings.TrimSpace(system), user: strings.TrimSpace(user)}
}
