package segment

import (
	"regexp"
	"strings"
)

var (
	timestampRe        = regexp.MustCompile(`\d{1,2}:\d{2}:\d{2}`)
	wrappedTimestampRe = regexp.MustCompile(`[\[(]?\d{1,2}:\d{2}:\d{2}[\])]?`)
)

// ExtractTimestamps returns the hh:mm:ss markers found in text, in order
// of appearance. Transcripts exported with inline timestamps keep them
// through cleaning, which lets chunks carry their time range for citation.
func ExtractTimestamps(text string) []string {
	return timestampRe.FindAllString(text, -1)
}

// StripTimestamps removes timestamp markers (bare, bracketed, or
// parenthesised) from text and collapses the whitespace left behind.
func StripTimestamps(text string) string {
	text = wrappedTimestampRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
