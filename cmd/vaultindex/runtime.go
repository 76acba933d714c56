package main

import (
	"fmt"

	"github.com/vaultindex/vaultindex/internal/config"
	"github.com/vaultindex/vaultindex/internal/embedding"
	"github.com/vaultindex/vaultindex/internal/lexical"
	"github.com/vaultindex/vaultindex/internal/retrieval"
	"github.com/vaultindex/vaultindex/internal/semantic"
	"github.com/vaultindex/vaultindex/internal/store"
)

// runtime holds the long-lived retrieval state shared by serve and search
type runtime struct {
	db        *store.DB
	textIndex *lexical.Index
	retriever *retrieval.Retriever
}

// newRuntime opens the stores built by `vaultindex index` and wires the
// hybrid retriever on top of them.
func newRuntime(cfg *config.Config) (*runtime, error) {
	db, err := store.Open(cfg.Data.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	textIndex, err := lexical.Open(cfg.Data.LexicalDir())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open lexical index (run `vaultindex index` first): %w", err)
	}

	ids, vectors, err := store.NewVectorStore(db).LoadAll()
	if err != nil {
		textIndex.Close()
		db.Close()
		return nil, fmt.Errorf("load embeddings: %w", err)
	}
	semIndex, err := semantic.NewIndex(ids, vectors)
	if err != nil {
		textIndex.Close()
		db.Close()
		return nil, fmt.Errorf("build semantic index: %w", err)
	}

	embedClient, err := embedding.NewClient(cfg.Embedding)
	if err != nil {
		textIndex.Close()
		db.Close()
		return nil, err
	}

	counter, err := retrieval.NewTiktokenCounter(cfg.Search.TokenizerModel)
	if err != nil {
		textIndex.Close()
		db.Close()
		return nil, err
	}

	retriever := retrieval.NewRetriever(
		textIndex,
		semantic.NewSearcher(semIndex, embedClient),
		store.NewChunkStore(db),
		counter,
		retrieval.Options{
			TopK:       cfg.Search.TopK,
			RankWeight: cfg.Search.RankWeight,
			MaxTokens:  cfg.Search.MaxTokens,
		},
	)

	return &runtime{db: db, textIndex: textIndex, retriever: retriever}, nil
}

// Close releases the runtime's resources
func (rt *runtime) Close() {
	rt.textIndex.Close()
	rt.db.Close()
}
