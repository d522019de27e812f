package docs

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// hruleRe matches a markdown horizontal rule: a line of three or more
// hyphens, optionally followed by trailing spaces.
var hruleRe = regexp.MustCompile(`(?m)^-{3,}[ \t]*$`)

// Bound trims content to at most max bytes, preferring to cut at a
// paragraph break or horizontal rule found in the last 20% of the
// truncated window so the cut doesn't land mid-sentence. When content is
// truncated, a short note naming origin is appended so the consumer can
// fetch the full file by other means.
//
// This is a literal substring search, not a markdown parser.
func Bound(content string, max int, origin string) string {
	if max <= 0 || len(content) <= max {
		return content
	}

	cut := max
	// Never split a multi-byte rune.
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	window := content[:cut]
	floor := cut - cut/5

	boundary := -1
	if i := strings.LastIndex(window, "\n\n"); i >= floor {
		boundary = i
	}
	if rules := hruleRe.FindAllStringIndex(window, -1); len(rules) > 0 {
		if i := rules[len(rules)-1][0]; i >= floor && i > boundary {
			boundary = i
		}
	}
	if boundary > 0 {
		window = window[:boundary]
	}

	return strings.TrimRight(window, " \t\n") +
		fmt.Sprintf("\n\n[content truncated — read %s for the full text]", origin)
}
