package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Snippet truncates s to at most n runes, collapsing whitespace runs first
// so log lines and error messages stay on one line.
func Snippet(s string, n int) string {
	s = strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
