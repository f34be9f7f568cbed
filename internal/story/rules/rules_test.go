package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()
	assert.Contains(t, lex.ColorWords, "grün")
	assert.Contains(t, lex.ColorWords, "orangefarbene")
	assert.Contains(t, lex.SpeechVerbs, "sagte")
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := "color_words:\n  - lila\n  - türkis\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"lila", "türkis"}, lex.ColorWords)
	// Missing lists fall back to the defaults.
	assert.Equal(t, DefaultLexicon().SpeechVerbs, lex.SpeechVerbs)
}

func TestLoadLexiconErrors(t *testing.T) {
	_, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color_words: [unclosed"), 0o644))
	_, err = LoadLexicon(path)
	assert.Error(t, err)
}
