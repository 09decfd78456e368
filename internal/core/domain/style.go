package domain

const unknownDescription = "Unknown"

// SummaryStyle selects the shape and tone of a generated summary.
type SummaryStyle string

// Available summary styles.
const (
	// StyleComprehensive is a full prose summary covering all key points.
	StyleComprehensive SummaryStyle = "comprehensive"

	// StyleBullet is a bullet-point list of main points and takeaways.
	StyleBullet SummaryStyle = "bullet"

	// StyleInsights extracts key learnings and actionable takeaways.
	StyleInsights SummaryStyle = "insights"

	// StyleTimeline orders the content chronologically.
	StyleTimeline SummaryStyle = "timeline"

	// StyleQA reframes the content as questions and answers.
	StyleQA SummaryStyle = "qa"

	// StyleBrief condenses the content into a few sentences.
	StyleBrief SummaryStyle = "brief"
)

// Styles returns all recognised summary styles in a stable order.
func Styles() []SummaryStyle {
	return []SummaryStyle{
		StyleComprehensive,
		StyleBullet,
		StyleInsights,
		StyleTimeline,
		StyleQA,
		StyleBrief,
	}
}

// IsValid returns true if the style is recognised.
func (s SummaryStyle) IsValid() bool {
	switch s {
	case StyleComprehensive, StyleBullet, StyleInsights, StyleTimeline, StyleQA, StyleBrief:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SummaryStyle) String() string {
	return string(s)
}

// Description returns a human-readable description of the style.
func (s SummaryStyle) Description() string {
	switch s {
	case StyleComprehensive:
		return "Comprehensive (full prose summary)"
	case StyleBullet:
		return "Bullet (main points as bullets)"
	case StyleInsights:
		return "Insights (key learnings and takeaways)"
	case StyleTimeline:
		return "Timeline (chronological flow)"
	case StyleQA:
		return "Q&A (questions and answers)"
	case StyleBrief:
		return "Brief (a few sentences)"
	default:
		return unknownDescription
	}
}

// ParseStyle maps a raw string to a summary style.
// Unrecognised values fall back to StyleComprehensive rather than erroring,
// so callers can pass user input straight through.
func ParseStyle(raw string) SummaryStyle {
	s := SummaryStyle(raw)
	if !s.IsValid() {
		return StyleComprehensive
	}
	return s
}
