// Package story drives the constrained story generation pipeline: prompt the
// completion service, normalize and segment the raw text, validate it against
// the hard rules, retry a bounded number of times and fall back to a fixed
// safe story when every attempt fails.
package story

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/text/unicode/norm"

	"fairykipp/backend/internal/llm"
	"fairykipp/backend/internal/story/prompt"
	"fairykipp/backend/internal/story/rules"
	"fairykipp/backend/internal/story/textproc"
)

const (
	// DefaultMaxAttempts bounds upstream calls per request. Retries cover
	// constraint violations only, never transport failures.
	DefaultMaxAttempts = 2
	// DefaultAttemptTimeout caps the wait on a single completion call.
	DefaultAttemptTimeout = 30 * time.Second
	// maxOutputTokens caps the completion length; two short sentences fit
	// comfortably.
	maxOutputTokens = 220
)

// ErrEmptyMotif is returned when a request carries no usable motif word.
var ErrEmptyMotif = errors.New("story: empty motif word")

// Request describes one generation request. Motif must already be
// NFC-normalized by the caller. A nil Temperature selects the variant
// default.
type Request struct {
	Motif       string
	Variant     prompt.Variant
	Temperature *float64
}

// Result is the terminal output of one generation request. When
// UsedFallback is false, Text is exactly two sentences that passed every
// rule.
type Result struct {
	Text         string
	UsedFallback bool
}

// Generator runs the bounded retry loop over a completion client.
type Generator struct {
	client         llm.CompletionClient
	prompts        *prompt.Builder
	lexicon        rules.Lexicon
	maxAttempts    int
	attemptTimeout time.Duration
	fallbackText   string
}

// NewGenerator creates a generator. maxAttempts < 1 and a zero timeout fall
// back to the defaults.
func NewGenerator(client llm.CompletionClient, lex rules.Lexicon, maxAttempts int, attemptTimeout time.Duration) *Generator {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if attemptTimeout <= 0 {
		attemptTimeout = DefaultAttemptTimeout
	}
	return &Generator{
		client:         client,
		prompts:        prompt.NewBuilder(),
		lexicon:        lex,
		maxAttempts:    maxAttempts,
		attemptTimeout: attemptTimeout,
		fallbackText:   prompt.FallbackText,
	}
}

// Generate runs the attempt loop. Upstream transport failures propagate
// immediately; only rule violations are retried. After the last failed
// attempt the fixed fallback text is returned, so a nil error always means a
// rule-conforming story.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	motif := textproc.Normalize(req.Motif)
	if motif == "" {
		return nil, ErrEmptyMotif
	}

	temperature := req.Variant.DefaultTemperature()
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	checker := rules.NewChecker(g.lexicon, req.Variant.MaxFirstSentence())
	p := llm.Prompt{
		System: g.prompts.BuildSystemPrompt(req.Variant),
		User:   g.prompts.BuildUserPrompt(motif),
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		raw, err := g.complete(ctx, p, float32(temperature))
		if err != nil {
			return nil, fmt.Errorf("completion attempt %d: %w", attempt, err)
		}

		// Fold the completion to NFC before matching: a motif in decomposed
		// form must not slip past the substring check.
		text := textproc.Normalize(norm.NFC.String(raw))
		sentences := textproc.Segment(text)
		if len(sentences) >= rules.ExpectedSentenceCount {
			// The model may over-generate; keep the first two sentences.
			text = textproc.Normalize(sentences[0] + " " + sentences[1])
		}

		candidate := textproc.Segment(text)
		res := checker.Check(rules.Input{Sentences: candidate, Text: text, Motif: motif})
		if res.IsValid {
			log.Printf("[Generator] Accepted candidate on attempt %d/%d", attempt, g.maxAttempts)
			return &Result{Text: text}, nil
		}

		log.Printf("[Generator] Attempt %d/%d rejected (%s): %s",
			attempt, g.maxAttempts, res.Violation, res.Reason)
	}

	log.Printf("[Generator] All %d attempts rejected, using fallback text", g.maxAttempts)
	return &Result{Text: g.fallbackText, UsedFallback: true}, nil
}

// complete performs one completion call under the per-attempt timeout. A
// timeout surfaces as context.DeadlineExceeded and is treated like any other
// transport failure.
func (g *Generator) complete(ctx context.Context, p llm.Prompt, temperature float32) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, g.attemptTimeout)
	defer cancel()
	return g.client.Complete(attemptCtx, p, temperature, maxOutputTokens)
}
