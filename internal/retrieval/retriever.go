package retrieval

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Searcher is one retrieval source: it returns up to n chunk ids for a
// query, best first.
type Searcher interface {
	Search(ctx context.Context, query string, n int) ([]string, error)
}

// Options controls retrieval behavior
type Options struct {
	TopK       int // results requested per source
	RankWeight int // fusion constant: rank 0 contributes this score
	MaxTokens  int // token budget for the assembled context
}

// DefaultOptions returns the standard retrieval settings
func DefaultOptions() Options {
	return Options{TopK: 10, RankWeight: 10, MaxTokens: 3200}
}

// Retriever runs the full hybrid pipeline: both sources in parallel,
// rank fusion, then token-budgeted context assembly.
type Retriever struct {
	lexical  Searcher
	semantic Searcher
	chunks   ChunkSource
	counter  TokenCounter
	opts     Options
}

// NewRetriever wires a retriever from its collaborators
func NewRetriever(lexical, semantic Searcher, chunks ChunkSource, counter TokenCounter, opts Options) *Retriever {
	return &Retriever{
		lexical:  lexical,
		semantic: semantic,
		chunks:   chunks,
		counter:  counter,
		opts:     opts,
	}
}

// GetChunks answers a query with an ordered, deduplicated, token-budgeted
// list of chunks. A blank query returns an empty result. A failing source
// fails the whole query; the wrapped error names which source failed.
func (r *Retriever) GetChunks(ctx context.Context, query string) ([]ContextChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	var lexicalIDs, semanticIDs []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := r.lexical.Search(gctx, query, r.opts.TopK)
		if err != nil {
			return fmt.Errorf("lexical search: %w", err)
		}
		lexicalIDs = ids
		return nil
	})
	g.Go(func() error {
		ids, err := r.semantic.Search(gctx, query, r.opts.TopK)
		if err != nil {
			return fmt.Errorf("semantic search: %w", err)
		}
		semanticIDs = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(lexicalIDs)+len(semanticIDs))
	for rank, id := range lexicalIDs {
		hits = append(hits, Hit{ID: id, Rank: rank})
	}
	for rank, id := range semanticIDs {
		hits = append(hits, Hit{ID: id, Rank: rank})
	}

	fused := FuseHits(hits, r.opts.RankWeight)
	return AssembleContext(fused, r.chunks, r.counter, r.opts.MaxTokens)
}
