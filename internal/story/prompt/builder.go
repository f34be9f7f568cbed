// Package prompt constructs the German instruction blocks sent to the
// completion service, one flavor per prompt variant.
package prompt

import (
	"fmt"
	"strings"
)

// Variant selects which instruction flavor a request uses.
type Variant string

const (
	// VariantBasic is the neutral default flavor.
	VariantBasic Variant = "basic"
	// VariantAtmospheric adds sensory detail and caps sentence 1 at
	// MaxFirstSentenceChars.
	VariantAtmospheric Variant = "atmospheric"
)

// MaxFirstSentenceChars is the sentence-1 length cap the atmospheric variant
// asks of the model and the rule pipeline enforces.
const MaxFirstSentenceChars = 95

// ParseVariant maps a request value to a Variant. The empty string selects
// the basic variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "", VariantBasic:
		return VariantBasic, nil
	case VariantAtmospheric:
		return VariantAtmospheric, nil
	}
	return "", fmt.Errorf("unknown prompt variant %q", s)
}

// DefaultTemperature returns the sampling temperature used when the request
// does not supply one.
func (v Variant) DefaultTemperature() float64 {
	if v == VariantAtmospheric {
		return 0.9
	}
	return 0.8
}

// MaxFirstSentence returns the enforced sentence-1 length cap for the
// variant, 0 when unrestricted.
func (v Variant) MaxFirstSentence() int {
	if v == VariantAtmospheric {
		return MaxFirstSentenceChars
	}
	return 0
}

// Builder constructs prompts for the story generator.
type Builder struct{}

// NewBuilder creates a new prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildSystemPrompt returns the system instruction block for the variant.
func (b *Builder) BuildSystemPrompt(v Variant) string {
	if v == VariantAtmospheric {
		return SystemPromptAtmospheric
	}
	return SystemPromptBasic
}

// BuildUserPrompt returns the user instruction block. The motif noun is
// embedded verbatim; it is the one piece of caller data the model sees.
func (b *Builder) BuildUserPrompt(motifNoun string) string {
	return fmt.Sprintf(UserPromptTemplate, motifNoun)
}
