package sentences

import (
	"regexp"
	"strings"
)

var (
	reHorizontalSpace = regexp.MustCompile(`[ \t]+`)
	// terminal punctuation followed by ASCII or Unicode whitespace, or a run
	// of newlines
	reBoundary = regexp.MustCompile(`[.?!][\s\p{Z}]+|\n+`)
)

// Normalize replaces non-breaking spaces, collapses runs of spaces and tabs
// into a single space and trims the result. Newlines are preserved since they
// act as sentence boundaries.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := strings.ReplaceAll(text, "\u00a0", " ")
	t = reHorizontalSpace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Split normalizes text and splits it on whitespace following '.', '?' or '!'
// and on newline runs. The punctuation stays with the sentence it ends.
// Empty fragments are dropped and the rest are trimmed.
func Split(text string) []string {
	text = Normalize(text)
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for _, loc := range reBoundary.FindAllStringIndex(text, -1) {
		cut := loc[0]
		if text[cut] != '\n' {
			cut++
		}
		out = appendFragment(out, text[start:cut])
		start = loc[1]
	}
	return appendFragment(out, text[start:])
}

func appendFragment(out []string, frag string) []string {
	if frag = strings.TrimSpace(frag); frag != "" {
		out = append(out, frag)
	}
	return out
}
