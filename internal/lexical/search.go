package lexical

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
)

// Field boosts mirror the weight of a title match over a section header
// match over a body match.
const (
	titleBoost  = 5.0
	headerBoost = 2.0
	textBoost   = 1.0
)

// Search returns up to n chunk ids matching the query, best first.
// Only chunk-type records are returned; whole documents are filtered out.
func (ix *Index) Search(ctx context.Context, query string, n int) ([]string, error) {
	if n <= 0 {
		n = 10
	}

	titleQuery := bleve.NewMatchQuery(query)
	titleQuery.SetField("title")
	titleQuery.SetBoost(titleBoost)

	headerQuery := bleve.NewMatchQuery(query)
	headerQuery.SetField("header")
	headerQuery.SetBoost(headerBoost)

	textQuery := bleve.NewMatchQuery(query)
	textQuery.SetField("text")
	textQuery.SetBoost(textBoost)

	disjunction := bleve.NewDisjunctionQuery(titleQuery, headerQuery, textQuery)

	typeFilter := bleve.NewTermQuery("chunk")
	typeFilter.SetField("type")

	conjunction := bleve.NewConjunctionQuery(disjunction, typeFilter)

	req := bleve.NewSearchRequestOptions(conjunction, n, 0, false)

	res, err := ix.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
