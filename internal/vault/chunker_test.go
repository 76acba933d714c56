package vault

import (
	"strings"
	"testing"
)

func TestSplitBasicBullets(t *testing.T) {
	c := NewChunker(5, 3)
	content := strings.Join([]string{
		"## Brewing",
		"- grind the beans",
		"  fresh every morning",
		"  use a burr grinder",
		"- heat the water",
		"  to 93 degrees",
		"  then pour slowly",
	}, "\n")

	chunks := c.Split(content)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(chunks), chunks)
	}

	want0 := "## Brewing\n- grind the beans\n  fresh every morning\n  use a burr grinder"
	if chunks[0] != want0 {
		t.Errorf("chunk 0 = %q, want %q", chunks[0], want0)
	}
	if !strings.HasPrefix(chunks[1], "## Brewing\n- heat the water") {
		t.Errorf("chunk 1 = %q, want header carried over", chunks[1])
	}
}

func TestSplitHeaderCarriesAcrossSections(t *testing.T) {
	c := NewChunker(5, 2)
	content := strings.Join([]string{
		"## First",
		"- one",
		"  detail",
		"## Second",
		"- two",
		"  detail",
	}, "\n")

	chunks := c.Split(content)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], "## First") {
		t.Errorf("chunk 0 should carry ## First, got %q", chunks[0])
	}
	if !strings.HasPrefix(chunks[1], "## Second") {
		t.Errorf("chunk 1 should carry ## Second, got %q", chunks[1])
	}
}

func TestSplitDropsFrontMatter(t *testing.T) {
	c := NewChunker(5, 2)
	content := strings.Join([]string{
		"---",
		"created: 2023-01-01",
		"aliases: []",
		"---",
		"## Notes",
		"- first point",
		"  with detail",
	}, "\n")

	chunks := c.Split(content)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1: %v", len(chunks), chunks)
	}
	if strings.Contains(chunks[0], "created:") {
		t.Errorf("front matter leaked into chunk: %q", chunks[0])
	}
}

func TestSplitUnterminatedFrontMatter(t *testing.T) {
	c := NewChunker(5, 2)
	content := strings.Join([]string{
		"---",
		"created: 2023-01-01",
		"- looks like",
		"  a bullet",
		"  but never closes",
	}, "\n")

	if chunks := c.Split(content); chunks != nil {
		t.Errorf("got %v, want nil for unterminated front matter", chunks)
	}
}

func TestSplitSkipsNoise(t *testing.T) {
	c := NewChunker(5, 2)
	content := strings.Join([]string{
		"## Links",
		"- tags: #coffee",
		"- source: https://example.com",
		"![](assets/photo.png)",
		"",
		"- real content",
		"  worth keeping",
	}, "\n")

	chunks := c.Split(content)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1: %v", len(chunks), chunks)
	}
	for _, banned := range []string{"tags:", "source:", "assets"} {
		if strings.Contains(chunks[0], banned) {
			t.Errorf("chunk contains %q: %q", banned, chunks[0])
		}
	}
}

func TestSplitMinChunkLines(t *testing.T) {
	c := NewChunker(5, 3)
	content := strings.Join([]string{
		"## Section",
		"- short bullet", // header + 1 line = 2 < 3, dropped
		"- long bullet",
		"  extra detail", // header + 2 lines = 3, kept
		"",
	}, "\n")

	chunks := c.Split(content)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1: %v", len(chunks), chunks)
	}
	if !strings.Contains(chunks[0], "long bullet") {
		t.Errorf("wrong chunk survived: %q", chunks[0])
	}
}

func TestSplitShortDocument(t *testing.T) {
	c := NewChunker(5, 2)
	if chunks := c.Split("- one\n  two"); chunks != nil {
		t.Errorf("got %v, want nil for document under the line minimum", chunks)
	}
}

func TestSplitKeepsTrailingChunk(t *testing.T) {
	c := NewChunker(5, 2)
	content := strings.Join([]string{
		"## End",
		"- first",
		"  detail",
		"- last bullet",
		"  trailing detail",
	}, "\n")

	chunks := c.Split(content)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (trailing chunk kept): %v", len(chunks), chunks)
	}
	if !strings.Contains(chunks[1], "last bullet") {
		t.Errorf("trailing chunk missing: %v", chunks)
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"## Section\n- bullet", "## Section"},
		{"single line", "single line"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Header(tt.in); got != tt.want {
			t.Errorf("Header(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
