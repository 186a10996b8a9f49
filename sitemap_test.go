package typedex_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/typedex/typedex"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter matches everything", func(t *testing.T) {
		t.Parallel()

		var f *typedex.URLFilter
		assert.True(t, f.Match("https://example.com/docs/a"))
	})

	t.Run("include requires at least one match", func(t *testing.T) {
		t.Parallel()

		f := &typedex.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
		}
		assert.True(t, f.Match("https://example.com/docs/a"))
		assert.False(t, f.Match("https://example.com/blog/a"))
	})

	t.Run("exclude applies after include", func(t *testing.T) {
		t.Parallel()

		f := &typedex.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`changelog`)},
		}
		assert.True(t, f.Match("https://example.com/docs/a"))
		assert.False(t, f.Match("https://example.com/docs/changelog"))
	})
}
