package typedex

import (
	"path"
	"strings"
)

// DefaultMarkers returns the chunk boundary markers in descending
// specificity order: four-backtick fences first, three-backtick fences as
// the fallback.
func DefaultMarkers() []string {
	return []string{"````\n\n", "```\n\n"}
}

// Header is the parsed first line of a chunk block.
type Header struct {
	// FilePath is the origin path following the "##" prefix.
	FilePath string

	// TypeName is the file stem of FilePath.
	TypeName string
}

// ParseChunkHeader parses a block's first line as "## <file-path>" and
// returns the header plus the remaining content. The bool result is false
// when the block has no newline or the prefix is malformed; callers keep
// such blocks as degenerate chunks rather than dropping them.
func ParseChunkHeader(block string) (Header, string, bool) {
	nl := strings.Index(block, "\n")
	if nl == -1 {
		return Header{}, "", false
	}

	line := strings.TrimSpace(block[:nl])
	if !strings.HasPrefix(line, "##") {
		return Header{}, "", false
	}

	filePath := strings.TrimLeft(line, "# ")
	if filePath == "" {
		return Header{}, "", false
	}

	// Content begins after the header line and an optional blank line.
	content := block[nl+1:]
	content = strings.TrimPrefix(content, "\n")

	base := path.Base(filePath)
	stem := strings.TrimSuffix(base, path.Ext(base))

	return Header{FilePath: filePath, TypeName: stem}, content, true
}

// Split partitions a corpus document into chunks using boundary markers.
//
// Markers are tried in order; the first marker that actually divides the
// document wins. A leading segment that does not parse as a chunk header is
// treated as document preamble and discarded. Every later segment is kept:
// blocks with a valid "## <file-path>" header become named chunks, malformed
// blocks become degenerate chunks with their full text preserved. Chunk
// indexes are assigned by enumeration order starting at 0.
func Split(document string, markers []string) []Chunk {
	if document == "" {
		return nil
	}
	if len(markers) == 0 {
		markers = DefaultMarkers()
	}

	parts := []string{document}
	for _, marker := range markers {
		if split := strings.Split(document, marker); len(split) > 1 {
			parts = split
			break
		}
	}

	var chunks []Chunk
	idx := 0
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}

		header, content, ok := ParseChunkHeader(part)
		if !ok {
			if i == 0 && len(parts) > 1 {
				// Preamble before the first boundary.
				continue
			}
			chunks = append(chunks, Chunk{Index: idx, Content: part})
			idx++
			continue
		}

		chunks = append(chunks, Chunk{
			TypeName: header.TypeName,
			FilePath: header.FilePath,
			Index:    idx,
			Content:  strings.TrimRight(content, "\n"),
		})
		idx++
	}

	return chunks
}
