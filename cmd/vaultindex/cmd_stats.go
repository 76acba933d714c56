package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vaultindex/vaultindex/internal/config"
	"github.com/vaultindex/vaultindex/internal/store"
)

// handleStats implements the stats subcommand
func handleStats(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    vaultindex stats

DESCRIPTION:
    Show counts of indexed documents, chunks and embeddings,
    plus the size of the data directory contents.
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	db, err := store.Open(cfg.Data.DBPath())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	chunks := store.NewChunkStore(db)
	docCount, err := chunks.CountByType(store.TypeDoc)
	if err != nil {
		log.Fatalf("Failed to count documents: %v", err)
	}
	chunkCount, err := chunks.CountByType(store.TypeChunk)
	if err != nil {
		log.Fatalf("Failed to count chunks: %v", err)
	}
	vectorCount, err := store.NewVectorStore(db).Count()
	if err != nil {
		log.Fatalf("Failed to count embeddings: %v", err)
	}

	fmt.Println("📊 Index statistics")
	fmt.Printf("\n   Vault:      %s\n", cfg.Vault.Path)
	fmt.Printf("   Data dir:   %s\n\n", cfg.Data.Dir)
	fmt.Printf("   Documents:  %6d\n", docCount)
	fmt.Printf("   Chunks:     %6d\n", chunkCount)
	fmt.Printf("   Embeddings: %6d\n", vectorCount)

	if info, err := os.Stat(cfg.Data.DBPath()); err == nil {
		fmt.Printf("\n   Database:   %.1f MB\n", float64(info.Size())/(1024*1024))
	}
}
