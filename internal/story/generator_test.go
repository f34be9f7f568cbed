package story

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"fairykipp/backend/internal/llm"
	"fairykipp/backend/internal/story/prompt"
	"fairykipp/backend/internal/story/rules"
)

// scriptedClient returns one canned completion (or error) per call, in order.
type scriptedClient struct {
	completions []string
	errs        []error
	calls       int
	prompts     []llm.Prompt
	temps       []float32
}

func (s *scriptedClient) Complete(_ context.Context, p llm.Prompt, temperature float32, _ int32) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, p)
	s.temps = append(s.temps, temperature)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return s.completions[i], nil
}

func newTestGenerator(client llm.CompletionClient) *Generator {
	return NewGenerator(client, rules.DefaultLexicon(), 2, time.Second)
}

func TestGenerateRetriesOnSpeechVerb(t *testing.T) {
	// Scenario: attempt 1 contains a banned speech verb, attempt 2 is clean.
	client := &scriptedClient{completions: []string{
		"Der Wald war still.   Sie sagte: \"Hallo.\"",
		"Der Wald war still. \"Hallo!\"",
	}}

	res, err := newTestGenerator(client).Generate(context.Background(), Request{Motif: "Laterne"})
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls)
	assert.False(t, res.UsedFallback)
	assert.Equal(t, "Der Wald war still. \"Hallo!\"", res.Text)
}

func TestGenerateFallsBackWhenMotifLeaks(t *testing.T) {
	leaking := "Die Laterne brannte hell. \"Schau nur!\""
	client := &scriptedClient{completions: []string{leaking, leaking}}

	res, err := newTestGenerator(client).Generate(context.Background(), Request{Motif: "Laterne"})
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, prompt.FallbackText, res.Text)
}

func TestGenerateRejectsDecomposedMotif(t *testing.T) {
	// The motif arrives NFC-normalized; a completion carrying it in
	// decomposed form must still be caught by the substring check.
	leaking := norm.NFD.String("Der Bär brummte leise.") + " \"Oh!\""
	client := &scriptedClient{completions: []string{leaking, leaking}}

	res, err := newTestGenerator(client).Generate(context.Background(), Request{Motif: "Bär"})
	require.NoError(t, err)

	assert.True(t, res.UsedFallback)
	assert.Equal(t, prompt.FallbackText, res.Text)
}

func TestGeneratePropagatesTransportError(t *testing.T) {
	upstream := errors.New("upstream unavailable")
	client := &scriptedClient{errs: []error{upstream}}

	_, err := newTestGenerator(client).Generate(context.Background(), Request{Motif: "Laterne"})
	require.Error(t, err)

	assert.ErrorIs(t, err, upstream)
	// Transport failures are never retried.
	assert.Equal(t, 1, client.calls)
}

func TestGenerateAcceptsFirstValidAttempt(t *testing.T) {
	client := &scriptedClient{completions: []string{
		"Ein Schatten glitt vorbei. \"Wer bist du?\"",
	}}
	gen := NewGenerator(client, rules.DefaultLexicon(), 1, time.Second)

	res, err := gen.Generate(context.Background(), Request{Motif: "X"})
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.False(t, res.UsedFallback)
	assert.Equal(t, "Ein Schatten glitt vorbei. \"Wer bist du?\"", res.Text)
}

func TestGenerateTruncatesOverGeneration(t *testing.T) {
	client := &scriptedClient{completions: []string{
		"Die Tür knarrte leise. \"Komm rein!\" Niemand antwortete darauf.",
	}}

	res, err := newTestGenerator(client).Generate(context.Background(), Request{Motif: "Laterne"})
	require.NoError(t, err)

	assert.False(t, res.UsedFallback)
	assert.Equal(t, "Die Tür knarrte leise. \"Komm rein!\"", res.Text)
}

func TestGenerateRejectsSingleSentence(t *testing.T) {
	single := "Nur ein einziger Satz ohne Rede."
	client := &scriptedClient{completions: []string{single, single}}

	res, err := newTestGenerator(client).Generate(context.Background(), Request{Motif: "Laterne"})
	require.NoError(t, err)

	assert.True(t, res.UsedFallback)
	assert.Equal(t, prompt.FallbackText, res.Text)
}

func TestGenerateEmptyMotif(t *testing.T) {
	client := &scriptedClient{}

	_, err := newTestGenerator(client).Generate(context.Background(), Request{Motif: "   "})
	assert.ErrorIs(t, err, ErrEmptyMotif)
	assert.Zero(t, client.calls)
}

func TestGeneratePromptAndTemperature(t *testing.T) {
	clean := "Der Regen trommelte ans Fenster. \"Endlich bist du da!\""

	t.Run("basic defaults", func(t *testing.T) {
		client := &scriptedClient{completions: []string{clean}}
		_, err := newTestGenerator(client).Generate(context.Background(), Request{Motif: "Laterne"})
		require.NoError(t, err)

		require.Len(t, client.prompts, 1)
		assert.Contains(t, client.prompts[0].User, `"Laterne"`)
		assert.Equal(t, prompt.NewBuilder().BuildSystemPrompt(prompt.VariantBasic), client.prompts[0].System)
		assert.InDelta(t, 0.8, client.temps[0], 1e-6)
	})

	t.Run("atmospheric defaults", func(t *testing.T) {
		client := &scriptedClient{completions: []string{clean}}
		_, err := newTestGenerator(client).Generate(context.Background(), Request{
			Motif:   "Laterne",
			Variant: prompt.VariantAtmospheric,
		})
		require.NoError(t, err)

		assert.Contains(t, client.prompts[0].System, "maximal 95 Zeichen")
		assert.InDelta(t, 0.9, client.temps[0], 1e-6)
	})

	t.Run("explicit temperature wins", func(t *testing.T) {
		temp := 0.3
		client := &scriptedClient{completions: []string{clean}}
		_, err := newTestGenerator(client).Generate(context.Background(), Request{
			Motif:       "Laterne",
			Temperature: &temp,
		})
		require.NoError(t, err)

		assert.InDelta(t, 0.3, client.temps[0], 1e-6)
	})
}

func TestGenerateAtmosphericEnforcesFirstSentenceCap(t *testing.T) {
	long := "Ein sehr langer erster Satz, der sich endlos durch die Dämmerung zieht und dabei weit über jede erlaubte Länge hinauswächst. \"Na so was!\""
	client := &scriptedClient{completions: []string{long, long}}

	res, err := newTestGenerator(client).Generate(context.Background(), Request{
		Motif:   "Laterne",
		Variant: prompt.VariantAtmospheric,
	})
	require.NoError(t, err)
	assert.True(t, res.UsedFallback)

	// The basic variant leaves sentence length unchecked.
	client = &scriptedClient{completions: []string{long}}
	res, err = newTestGenerator(client).Generate(context.Background(), Request{Motif: "Laterne"})
	require.NoError(t, err)
	assert.False(t, res.UsedFallback)
}
