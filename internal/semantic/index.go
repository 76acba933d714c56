package semantic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vaultindex/vaultindex/internal/embedding"
)

// Query and passage prefixes expected by e5-style embedding models.
const (
	QueryPrefix   = "query: "
	PassagePrefix = "passage: "
)

// PassageText collapses whitespace and adds the passage prefix, producing
// the exact string that gets embedded for a chunk.
func PassageText(text string) string {
	return PassagePrefix + strings.Join(strings.Fields(text), " ")
}

// Index is a dense-vector index: a row-major matrix of unit-length vectors
// and the chunk id of each row. Built once, read-only afterwards.
type Index struct {
	ids     []string
	vectors [][]float32
	dim     int
}

// NewIndex builds an index from parallel id/vector slices.
// The slices must be the same length and all vectors the same dimension.
func NewIndex(ids []string, vectors [][]float32) (*Index, error) {
	if len(ids) != len(vectors) {
		return nil, fmt.Errorf("ids/vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	dim := 0
	for i, vec := range vectors {
		if i == 0 {
			dim = len(vec)
			continue
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("vector %d has %d dimensions, expected %d", i, len(vec), dim)
		}
	}
	return &Index{ids: ids, vectors: vectors, dim: dim}, nil
}

// Len returns the number of rows
func (ix *Index) Len() int {
	return len(ix.ids)
}

// TopN returns the ids of the n rows most similar to the query vector,
// by dot product, best first. Ties break on ascending row index.
func (ix *Index) TopN(query []float32, n int) []string {
	if n <= 0 || len(ix.ids) == 0 {
		return nil
	}

	type rowScore struct {
		row   int
		score float32
	}
	scores := make([]rowScore, len(ix.vectors))
	for i, vec := range ix.vectors {
		scores[i] = rowScore{row: i, score: embedding.Dot(query, vec)}
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].score > scores[b].score
	})

	if n > len(scores) {
		n = len(scores)
	}
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = ix.ids[scores[i].row]
	}
	return ids
}

// Searcher answers semantic queries by embedding the query text and
// scanning the index.
type Searcher struct {
	index *Index
	embed embedding.Client
}

// NewSearcher creates a searcher over the given index
func NewSearcher(index *Index, embed embedding.Client) *Searcher {
	return &Searcher{index: index, embed: embed}
}

// Search returns up to n chunk ids semantically closest to the query.
func (s *Searcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	vec, err := s.embed.Embed(ctx, QueryPrefix+query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	embedding.Normalize(vec)
	return s.index.TopN(vec, n), nil
}
