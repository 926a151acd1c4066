package prompt

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse("v1-5-pruned.safetensors|a kitten in a teacup")
	require.NoError(t, err)
	assert.Equal(t, Choice{Model: "v1-5-pruned.safetensors", Prompt: "a kitten in a teacup"}, c)

	c, err = Parse("|a kitten|blurry, lowres")
	require.NoError(t, err)
	assert.Equal(t, Choice{Prompt: "a kitten", NegativePrompt: "blurry, lowres"}, c)

	_, err = Parse("no separator")
	assert.Error(t, err)
	_, err = Parse("model|")
	assert.Error(t, err)
}

func TestRandomize(t *testing.T) {
	prompts := []string{"a|one", "b|two", "c|three"}
	r := New(prompts, rand.NewSource(1))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c, err := r.Randomize(context.Background())
		require.NoError(t, err)
		seen[c.Model] = true
	}
	assert.Len(t, seen, 3)
}

func TestRandomizeEmpty(t *testing.T) {
	_, err := New(nil, rand.NewSource(1)).Randomize(context.Background())
	assert.ErrorIs(t, err, ErrNoPrompts)
}
