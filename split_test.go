package typedex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typedex/typedex"
)

func TestParseChunkHeader(t *testing.T) {
	t.Parallel()

	t.Run("parses path and stem", func(t *testing.T) {
		t.Parallel()

		header, content, ok := typedex.ParseChunkHeader("## Sources/Core/Atom.swift\n\nstruct Atom {}\n")
		require.True(t, ok)
		assert.Equal(t, "Sources/Core/Atom.swift", header.FilePath)
		assert.Equal(t, "Atom", header.TypeName)
		assert.Equal(t, "struct Atom {}\n", content)
	})

	t.Run("stem strips only the last extension", func(t *testing.T) {
		t.Parallel()

		header, _, ok := typedex.ParseChunkHeader("## docs/Atom.generated.md\nbody")
		require.True(t, ok)
		assert.Equal(t, "Atom.generated", header.TypeName)
	})

	t.Run("rejects block without newline", func(t *testing.T) {
		t.Parallel()

		_, _, ok := typedex.ParseChunkHeader("## Sources/Atom.swift")
		assert.False(t, ok)
	})

	t.Run("rejects missing header prefix", func(t *testing.T) {
		t.Parallel()

		_, _, ok := typedex.ParseChunkHeader("Sources/Atom.swift\nbody")
		assert.False(t, ok)
	})

	t.Run("rejects header with empty path", func(t *testing.T) {
		t.Parallel()

		_, _, ok := typedex.ParseChunkHeader("##   \nbody")
		assert.False(t, ok)
	})
}

func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("splits on four-backtick fence", func(t *testing.T) {
		t.Parallel()

		doc := "## Sources/Atom.swift\n\nstruct Atom {}\n````\n\n## Sources/StateAtom.swift\n\nstruct StateAtom {}\n````\n\n"

		chunks := typedex.Split(doc, typedex.DefaultMarkers())
		require.Len(t, chunks, 2)

		assert.Equal(t, "Atom", chunks[0].TypeName)
		assert.Equal(t, "Sources/Atom.swift", chunks[0].FilePath)
		assert.Equal(t, 0, chunks[0].Index)
		assert.Equal(t, "struct Atom {}", chunks[0].Content)

		assert.Equal(t, "StateAtom", chunks[1].TypeName)
		assert.Equal(t, 1, chunks[1].Index)
		assert.Equal(t, "struct StateAtom {}", chunks[1].Content)
	})

	t.Run("falls back to three-backtick fence", func(t *testing.T) {
		t.Parallel()

		doc := "## A.swift\n\na\n```\n\n## B.swift\n\nb\n"

		chunks := typedex.Split(doc, typedex.DefaultMarkers())
		require.Len(t, chunks, 2)
		assert.Equal(t, "A", chunks[0].TypeName)
		assert.Equal(t, "B", chunks[1].TypeName)
	})

	t.Run("first marker that divides wins", func(t *testing.T) {
		t.Parallel()

		// The four-backtick fence divides, so the three-backtick fence
		// inside chunk content must survive intact.
		doc := "## A.swift\n\n```\n\ncode\n````\n\n## B.swift\n\nb\n"

		chunks := typedex.Split(doc, typedex.DefaultMarkers())
		require.Len(t, chunks, 2)
		assert.Equal(t, "```\n\ncode", chunks[0].Content)
	})

	t.Run("discards preamble before the first boundary", func(t *testing.T) {
		t.Parallel()

		doc := "Crawl summary: 2 pages\n````\n\n## A.swift\n\na\n"

		chunks := typedex.Split(doc, typedex.DefaultMarkers())
		require.Len(t, chunks, 1)
		assert.Equal(t, "A", chunks[0].TypeName)
		assert.Equal(t, 0, chunks[0].Index)
	})

	t.Run("keeps malformed later blocks as degenerate chunks", func(t *testing.T) {
		t.Parallel()

		doc := "## A.swift\n\na\n````\n\norphan text without a header\n````\n\n## B.swift\n\nb\n"

		chunks := typedex.Split(doc, typedex.DefaultMarkers())
		require.Len(t, chunks, 3)

		assert.False(t, chunks[0].Degenerate())
		assert.True(t, chunks[1].Degenerate())
		assert.Equal(t, "", chunks[1].TypeName)
		assert.Contains(t, chunks[1].Content, "orphan text")
		assert.Equal(t, 1, chunks[1].Index)
		assert.Equal(t, 2, chunks[2].Index)
	})

	t.Run("no marker present yields one chunk", func(t *testing.T) {
		t.Parallel()

		doc := "## A.swift\n\na\n"

		chunks := typedex.Split(doc, typedex.DefaultMarkers())
		require.Len(t, chunks, 1)
		assert.Equal(t, "A", chunks[0].TypeName)
	})

	t.Run("empty document yields no chunks", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, typedex.Split("", typedex.DefaultMarkers()))
	})

	t.Run("whitespace-only segments are skipped", func(t *testing.T) {
		t.Parallel()

		doc := "## A.swift\n\na\n````\n\n  \n````\n\n## B.swift\n\nb\n"

		chunks := typedex.Split(doc, typedex.DefaultMarkers())
		require.Len(t, chunks, 2)
		assert.Equal(t, 0, chunks[0].Index)
		assert.Equal(t, 1, chunks[1].Index)
	})
}
