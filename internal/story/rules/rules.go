// Package rules implements the hard lexical and structural constraints a
// generated story candidate must satisfy before it may reach a player.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Violation identifies the specific way a candidate failed.
type Violation string

const (
	MotifPresent        Violation = "motif_present"
	ForbiddenColorWord  Violation = "forbidden_color_word"
	ForbiddenSpeechVerb Violation = "forbidden_speech_verb"
	WrongSentenceCount  Violation = "wrong_sentence_count"
	LengthExceeded      Violation = "length_exceeded"
)

// Result is the outcome of a single rule check.
type Result struct {
	IsValid   bool
	Violation Violation
	Reason    string
}

// OK returns a passing result.
func OK() Result {
	return Result{IsValid: true}
}

// Fail returns a failing result with the violation kind and a reason for logs.
func Fail(v Violation, reason string) Result {
	return Result{IsValid: false, Violation: v, Reason: reason}
}

// Input carries one candidate through the rule pipeline. Text is the
// space-joined form of Sentences; Motif is the forbidden word, already
// NFC-normalized by the caller.
type Input struct {
	Sentences []string
	Text      string
	Motif     string
}

// Rule is a single named constraint.
type Rule interface {
	// Name returns the rule's name for logging.
	Name() string
	// Check inspects the candidate and returns a result.
	Check(in Input) Result
}

// Lexicon holds the banned word lists. All matching is case-insensitive
// substring matching, so inflected forms must be listed explicitly.
type Lexicon struct {
	ColorWords  []string `yaml:"color_words"`
	SpeechVerbs []string `yaml:"speech_verbs"`
}

// DefaultLexicon returns the built-in German lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		ColorWords: []string{
			"grün", "grüne", "blaue", "blau", "violett",
			"orange", "orangefarben", "orangefarbene", "rot", "gelb",
		},
		SpeechVerbs: []string{"sagte", "meinte", "dachte"},
	}
}

// LoadLexicon reads a YAML lexicon file. Lists missing from the file fall
// back to the built-in defaults, so a file may override just one of them.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("reading lexicon file: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parsing lexicon file: %w", err)
	}

	def := DefaultLexicon()
	if len(lex.ColorWords) == 0 {
		lex.ColorWords = def.ColorWords
	}
	if len(lex.SpeechVerbs) == 0 {
		lex.SpeechVerbs = def.SpeechVerbs
	}
	return lex, nil
}
