package stencil

import (
	"regexp"
	"strings"
)

// displayMath matches display-math segments between \[ and \], non-greedy,
// across newlines.
var displayMath = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)

// Extract returns every display-math segment of the document in order.
// Segments are returned verbatim: no deduplication, no validation.
func Extract(text string) []string {
	matches := displayMath.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// RightHandSide strips an equation's left-hand side. When the segment
// contains one or more equality signs, only the substring after the last
// one is kept, so "a = b = c" parses as "c".
func RightHandSide(segment string) string {
	if i := strings.LastIndex(segment, "="); i >= 0 {
		return segment[i+1:]
	}
	return segment
}
