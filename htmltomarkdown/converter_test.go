package htmltomarkdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typedex/typedex"
	"github.com/typedex/typedex/htmltomarkdown"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("headings and code blocks", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		md, err := c.Convert(`<h2>Atom</h2><pre><code>struct Counter: Atom {}</code></pre>`)
		require.NoError(t, err)

		assert.Contains(t, md, "## Atom")
		assert.Contains(t, md, "struct Counter: Atom {}")
	})

	t.Run("tables survive conversion", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		md, err := c.Convert(`<table><tr><th>Parameter</th><th>Type</th></tr><tr><td>value</td><td>Int</td></tr></table>`)
		require.NoError(t, err)

		assert.Contains(t, md, "Parameter")
		assert.Contains(t, md, "|")
	})

	t.Run("links become markdown links", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		md, err := c.Convert(`<p>See <a href="https://example.com/docs">the docs</a>.</p>`)
		require.NoError(t, err)

		assert.Contains(t, md, "[the docs](https://example.com/docs)")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		_, err := c.Convert("   ")
		assert.Equal(t, typedex.EINVALID, typedex.ErrorCode(err))
	})
}
