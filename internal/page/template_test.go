package page

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate(t *testing.T) {
	var g Templator
	html, err := g.Template(context.Background(), Params{
		Image:  "20240101.png",
		Model:  "v1-5",
		Prompt: "a <kitten>",
		Seed:   "1234",
		Info:   map[string]string{"Prompt": "a <kitten>", "Seed": "1234", "Steps": "20", "Sampler": "Euler a"},
	})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `src="/20240101.png"`)
	assert.Contains(t, out, "a &lt;kitten&gt;")
	assert.Contains(t, out, "<dt>Steps</dt><dd>20</dd>")
	assert.Contains(t, out, "<dt>Sampler</dt><dd>Euler a</dd>")
	assert.Equal(t, 1, strings.Count(out, "<dt>Seed</dt>"))
}
