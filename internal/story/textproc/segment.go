package textproc

import (
	"regexp"
	"strings"
)

// sentenceRegex captures a run of non-terminal characters followed by one or
// more terminal punctuation marks. Closing quotation marks directly after the
// punctuation belong to the sentence, so direct speech like `"Hallo!"` keeps
// its trailing quote through reassembly.
var sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]+["“”„«»‹›']*`)

// Segment splits a normalized string into sentence-like units in input order.
// This is a punctuation heuristic, not a linguistic boundary detector: it will
// mis-segment abbreviations and punctuation inside quotes. If the input has no
// terminal punctuation at all, the whole trimmed input is returned as a single
// sentence; blank input returns nil.
func Segment(s string) []string {
	matches := sentenceRegex.FindAllString(s, -1)
	if len(matches) > 0 {
		sentences := make([]string, 0, len(matches))
		for _, m := range matches {
			if t := strings.TrimSpace(m); t != "" {
				sentences = append(sentences, t)
			}
		}
		return sentences
	}

	if t := strings.TrimSpace(s); t != "" {
		return []string{t}
	}
	return nil
}
