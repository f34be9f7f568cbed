// Package textproc provides the pure text processing steps of the story
// pipeline: whitespace normalization and sentence segmentation.
package textproc

import (
	"strings"
	"unicode"
)

// Normalize collapses every run of whitespace (spaces, tabs, newlines) into a
// single space and trims the result. Idempotent; empty or all-whitespace input
// yields "".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		b.WriteRune(r)
	}

	return b.String()
}
