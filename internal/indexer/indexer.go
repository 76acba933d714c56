package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vaultindex/vaultindex/internal/config"
	"github.com/vaultindex/vaultindex/internal/embedding"
	"github.com/vaultindex/vaultindex/internal/lexical"
	"github.com/vaultindex/vaultindex/internal/semantic"
	"github.com/vaultindex/vaultindex/internal/store"
	"github.com/vaultindex/vaultindex/internal/vault"
)

// Indexer runs the offline build: scan the vault, chunk every note, and
// populate the chunk store, the lexical index and the embedding table.
type Indexer struct {
	cfg      *config.Config
	db       *store.DB
	chunks   *store.ChunkStore
	vectors  *store.VectorStore
	embed    embedding.Client
	progress ProgressReporter
	buildLog *BuildLogger
}

// Result summarizes a completed build
type Result struct {
	Files      int
	Docs       int
	Chunks     int
	Embeddings int
}

// NewIndexer opens the storage layer for a build
func NewIndexer(cfg *config.Config, progress ProgressReporter, buildLog *BuildLogger) (*Indexer, error) {
	db, err := store.Open(cfg.Data.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	embed, err := embedding.NewClient(cfg.Embedding)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Indexer{
		cfg:      cfg,
		db:       db,
		chunks:   store.NewChunkStore(db),
		vectors:  store.NewVectorStore(db),
		embed:    embed,
		progress: progress,
		buildLog: buildLog,
	}, nil
}

// Close releases the storage layer
func (ix *Indexer) Close() error {
	return ix.db.Close()
}

// DB exposes the underlying database, used by the stats command
func (ix *Indexer) DB() *store.DB {
	return ix.db
}

// IndexVault rebuilds all indexes from the vault contents
func (ix *Indexer) IndexVault(ctx context.Context) (*Result, error) {
	if err := ix.db.Clear(); err != nil {
		return nil, fmt.Errorf("clear previous index: %w", err)
	}

	scanner := vault.NewScanner(ix.cfg.Vault.Path, ix.cfg.Vault.Exclude)
	paths, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	ix.buildLog.Info("vault scanned", map[string]interface{}{
		"root": ix.cfg.Vault.Path, "files": len(paths),
	})

	textIndex, err := lexical.Create(ix.cfg.Data.LexicalDir())
	if err != nil {
		return nil, err
	}
	defer textIndex.Close()

	chunker := vault.NewChunker(ix.cfg.Vault.MinDocLines, ix.cfg.Vault.MinChunkLines)

	result := &Result{Files: len(paths)}
	var embedIDs []string
	var embedTexts []string

	ix.progress.Start(len(paths), "chunking")
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(filepath.Join(ix.cfg.Vault.Path, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", rel, err)
		}

		pieces := chunker.Split(string(content))
		if len(pieces) == 0 {
			ix.buildLog.Info("skipped note", map[string]interface{}{"path": rel})
			ix.progress.Increment()
			continue
		}

		title := strings.TrimSuffix(filepath.Base(rel), ".md")

		records := make([]*store.Chunk, 0, len(pieces)+1)
		records = append(records, &store.Chunk{
			ID:    rel,
			Title: title,
			Type:  store.TypeDoc,
			Path:  rel,
			Text:  string(content),
		})
		for seq, text := range pieces {
			records = append(records, &store.Chunk{
				ID:    fmt.Sprintf("%s-%d", rel, seq),
				Title: title,
				Type:  store.TypeChunk,
				Path:  rel,
				Text:  text,
			})
		}

		if err := ix.chunks.InsertBatch(records); err != nil {
			return nil, fmt.Errorf("store %s: %w", rel, err)
		}

		for _, rec := range records {
			doc := lexical.TextDoc{
				Title: rec.Title,
				Text:  rec.Text,
				Type:  rec.Type,
			}
			if rec.Type == store.TypeChunk {
				doc.Header = vault.Header(rec.Text)
				embedIDs = append(embedIDs, rec.ID)
				embedTexts = append(embedTexts, semantic.PassageText(rec.Text))
			}
			if err := textIndex.IndexDoc(rec.ID, doc); err != nil {
				return nil, fmt.Errorf("index %s: %w", rec.ID, err)
			}
		}

		result.Docs++
		result.Chunks += len(pieces)
		ix.progress.Increment()
	}
	ix.progress.Finish()

	if err := ix.embedAll(ctx, embedIDs, embedTexts); err != nil {
		return nil, err
	}
	result.Embeddings = len(embedIDs)

	// The semantic matrix is only valid if every chunk got a vector
	vectorCount, err := ix.vectors.Count()
	if err != nil {
		return nil, err
	}
	chunkCount, err := ix.chunks.CountByType(store.TypeChunk)
	if err != nil {
		return nil, err
	}
	if vectorCount != chunkCount {
		return nil, fmt.Errorf("embedding count %d does not match chunk count %d", vectorCount, chunkCount)
	}

	ix.buildLog.Info("build complete", map[string]interface{}{
		"docs": result.Docs, "chunks": result.Chunks, "embeddings": result.Embeddings,
	})
	return result, nil
}

// embedAll embeds chunk texts in batches and persists the vectors
func (ix *Indexer) embedAll(ctx context.Context, ids, texts []string) error {
	batchSize := ix.cfg.Embedding.BatchSize

	ix.progress.Start(len(ids), "embedding")
	defer ix.progress.Finish()

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		vectors, err := ix.embed.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return fmt.Errorf("embed batch at %d: %w", start, err)
		}
		for _, vec := range vectors {
			embedding.Normalize(vec)
		}

		if err := ix.vectors.InsertBatch(ids[start:end], vectors, ix.cfg.Embedding.Model); err != nil {
			return fmt.Errorf("store vectors at %d: %w", start, err)
		}

		for range vectors {
			ix.progress.Increment()
		}
	}

	return nil
}
