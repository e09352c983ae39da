package rank

import (
	"strings"
	"unicode/utf8"
)

const snippetLength = 160

// Snippet extracts a short excerpt from content, centered on the earliest
// keyword occurrence. Falls back to the leading characters when no keyword
// matches.
func Snippet(content string, keywords []string) string {
	content = strings.Join(strings.Fields(content), " ")
	if content == "" {
		return ""
	}

	lower := strings.ToLower(content)
	hit := -1
	for _, keyword := range keywords {
		if idx := strings.Index(lower, keyword); idx >= 0 && (hit < 0 || idx < hit) {
			hit = idx
		}
	}

	start := 0
	if hit > snippetLength/4 {
		start = hit - snippetLength/4
	}
	end := start + snippetLength
	if end >= len(content) {
		end = len(content)
	}

	// Never cut inside a multi-byte rune.
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(content) {
		snippet += "…"
	}
	return snippet
}
