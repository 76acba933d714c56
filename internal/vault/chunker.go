package vault

import (
	"strings"
)

// Chunker splits a markdown document into bullet-level excerpts
type Chunker struct {
	minDocLines   int
	minChunkLines int
}

// NewChunker creates a chunker with the given thresholds
func NewChunker(minDocLines, minChunkLines int) *Chunker {
	return &Chunker{minDocLines: minDocLines, minChunkLines: minChunkLines}
}

// Split breaks content into chunks. It returns nil when the document is
// too short or yields no chunk long enough to keep.
//
// Rules:
//   - YAML front matter between leading --- markers is dropped
//   - blank lines, "- tag"/"- source" bullets and image embeds are dropped
//   - the most recent "##" section header is remembered and prepended to
//     each following chunk
//   - every top-level "- " bullet starts a new chunk
//   - chunks shorter than minChunkLines lines are discarded
func (c *Chunker) Split(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) < c.minDocLines {
		return nil
	}

	lines = stripFrontMatter(lines)

	var chunks []string
	var current []string
	header := ""

	flush := func() {
		if len(current) >= c.minChunkLines {
			chunks = append(chunks, strings.Join(current, "\n"))
		}
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "- tag") || strings.HasPrefix(trimmed, "- source") {
			continue
		}
		if strings.Contains(trimmed, "![](assets") {
			continue
		}

		if strings.Contains(line, "##") {
			header = line
			continue
		}

		if strings.HasPrefix(line, "- ") {
			flush()
			if header != "" {
				current = append(current, header)
			}
			current = append(current, line)
			continue
		}

		current = append(current, line)
	}
	flush()

	return chunks
}

// Header returns the first line of a chunk, used as its lexical header field.
func Header(chunk string) string {
	if i := strings.IndexByte(chunk, '\n'); i >= 0 {
		return chunk[:i]
	}
	return chunk
}

// stripFrontMatter removes a leading YAML front matter block
func stripFrontMatter(lines []string) []string {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return lines
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return lines[i+1:]
		}
	}
	// Unterminated front matter swallows the document
	return nil
}
