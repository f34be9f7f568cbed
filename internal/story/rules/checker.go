package rules

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

// ExpectedSentenceCount is the number of sentences every accepted story has.
const ExpectedSentenceCount = 2

// Checker runs all active rules against a candidate, stopping at the first
// violation. Which rules are active depends on construction: maxFirstSentence
// of 0 disables the length rule.
type Checker struct {
	rules []Rule
}

// NewChecker builds a checker for the given lexicon. maxFirstSentence caps
// the rune length of sentence 1; pass 0 to leave it unenforced.
func NewChecker(lex Lexicon, maxFirstSentence int) *Checker {
	rs := []Rule{
		&sentenceCountRule{},
		&motifRule{},
		&lexiconRule{name: "ColorWordRule", violation: ForbiddenColorWord, words: lex.ColorWords},
		&lexiconRule{name: "SpeechVerbRule", violation: ForbiddenSpeechVerb, words: lex.SpeechVerbs},
	}
	if maxFirstSentence > 0 {
		rs = append(rs, &firstSentenceLengthRule{max: maxFirstSentence})
	}
	return &Checker{rules: rs}
}

// Check runs the rule pipeline. All rules are conjunctive: the first failure
// fails the candidate.
func (c *Checker) Check(in Input) Result {
	for _, r := range c.rules {
		if res := r.Check(in); !res.IsValid {
			log.Printf("[%s] FAIL - %s", r.Name(), res.Reason)
			return res
		}
	}
	return OK()
}

// sentenceCountRule requires exactly two sentences.
type sentenceCountRule struct{}

func (r *sentenceCountRule) Name() string { return "SentenceCountRule" }

func (r *sentenceCountRule) Check(in Input) Result {
	if len(in.Sentences) != ExpectedSentenceCount {
		return Fail(WrongSentenceCount,
			fmt.Sprintf("expected %d sentences, got %d", ExpectedSentenceCount, len(in.Sentences)))
	}
	return OK()
}

// motifRule forbids the motif word anywhere in the text. Substring matching
// is deliberate: compounds containing the motif must be blocked too.
type motifRule struct{}

func (r *motifRule) Name() string { return "MotifRule" }

func (r *motifRule) Check(in Input) Result {
	motif := strings.ToLower(in.Motif)
	if motif == "" {
		return OK()
	}
	if strings.Contains(strings.ToLower(in.Text), motif) {
		return Fail(MotifPresent, "motif word present in candidate")
	}
	return OK()
}

// lexiconRule forbids any member of a banned word list.
type lexiconRule struct {
	name      string
	violation Violation
	words     []string
}

func (r *lexiconRule) Name() string { return r.name }

func (r *lexiconRule) Check(in Input) Result {
	t := strings.ToLower(in.Text)
	for _, w := range r.words {
		if w == "" {
			continue
		}
		if strings.Contains(t, strings.ToLower(w)) {
			return Fail(r.violation, fmt.Sprintf("banned word %q present", w))
		}
	}
	return OK()
}

// firstSentenceLengthRule caps sentence 1 at max runes, spaces and
// punctuation included.
type firstSentenceLengthRule struct {
	max int
}

func (r *firstSentenceLengthRule) Name() string { return "FirstSentenceLengthRule" }

func (r *firstSentenceLengthRule) Check(in Input) Result {
	if len(in.Sentences) == 0 {
		return OK()
	}
	if n := utf8.RuneCountInString(in.Sentences[0]); n > r.max {
		return Fail(LengthExceeded,
			fmt.Sprintf("sentence 1 has %d characters, limit is %d", n, r.max))
	}
	return OK()
}
