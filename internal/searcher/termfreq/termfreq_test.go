package termfreq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	freqs, vocab := Build(map[int]string{
		0: "the cat sat on the mat",
		2: "cat and dog",
	})

	require.Len(t, freqs, 2)
	assert.Equal(t, 2, freqs[0].Count("the"))
	assert.Equal(t, 1, freqs[0].Count("cat"))
	assert.Equal(t, 0, freqs[0].Count("dog"))
	assert.Equal(t, 1, freqs[2].Count("dog"))

	assert.Equal(t, []string{"and", "cat", "dog", "mat", "on", "sat", "the"}, vocab.Terms())
	assert.Equal(t, 7, vocab.Len())
	assert.True(t, vocab.Contains("mat"))
	assert.False(t, vocab.Contains("bird"))
}

func TestBuild_Empty(t *testing.T) {
	freqs, vocab := Build(map[int]string{})

	assert.Empty(t, freqs)
	assert.Equal(t, 0, vocab.Len())
	assert.Empty(t, vocab.Terms())
}

func TestFrequencies_NilCount(t *testing.T) {
	var f Frequencies
	assert.Equal(t, 0, f.Count("anything"))
}
