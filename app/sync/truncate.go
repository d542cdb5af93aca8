package sync

import (
	"strings"
	"unicode/utf8"
)

// Boundaries tried when truncating the Body property, in priority order.
var sentenceBoundaries = []string{"\n\n", ". ", "! ", "? ", "; "}

// truncateAtBoundary cuts text to at most max characters, preferring a
// sentence boundary. A boundary is only used when it keeps more than half
// of the allowed length; otherwise the text is hard-cut with an ellipsis.
func truncateAtBoundary(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	head := string(runes[:max])
	for _, boundary := range sentenceBoundaries {
		idx := strings.LastIndex(head, boundary)
		if idx < 0 {
			continue
		}
		if utf8.RuneCountInString(head[:idx]) > max/2 {
			return strings.TrimSpace(head[:idx+1])
		}
	}

	return strings.TrimSpace(string(runes[:max-3])) + "..."
}
