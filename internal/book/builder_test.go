package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeTranscript(t *testing.T) {
	got := tokenizeTranscript("1. e4 e5 2. Nf3 Nc6 3. Bb5 *")
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}, got)
}

func TestBuilderAddGameRecordsOpening(t *testing.T) {
	b := NewBuilder(4)
	require.NoError(t, b.AddGame("1. e4 e5 2. Nf3 Nc6"))
	assert.Equal(t, 4, b.Positions())
}

func TestBuilderSkipsUnparsableGames(t *testing.T) {
	b := NewBuilder(10)
	added, skipped, err := b.AddCorpus(strings.NewReader("1. e4 e5\nnot a real game\n1. d4 d5\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, skipped)
}
