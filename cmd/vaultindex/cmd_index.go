package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vaultindex/vaultindex/cmd/vaultindex/internal"
	"github.com/vaultindex/vaultindex/internal/config"
	"github.com/vaultindex/vaultindex/internal/indexer"
)

// handleIndex implements the index subcommand
func handleIndex(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	noProgress := fs.Bool("no-progress", false, "Disable the progress bar")
	verbose := fs.Bool("v", false, "Verbose output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    vaultindex index [options]

DESCRIPTION:
    Rebuild the retrieval indexes from the vault.
    This will:
      1. Scan the vault for markdown notes
      2. Split each note into bullet-level chunks
      3. Store documents and chunks in SQLite
      4. Build the lexical (bleve) index
      5. Embed every chunk and store the vectors

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    # Rebuild from the configured vault
    vaultindex index

    # Rebuild a different vault
    vaultindex -vault ~/other-notes index
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	if *verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	fmt.Printf("🏗️  Building index for: %s\n\n", cfg.Vault.Path)

	logDir, err := internal.LogDir()
	if err != nil {
		log.Fatalf("Failed to resolve log directory: %v", err)
	}
	buildLog, err := indexer.NewBuildLogger(logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: build log unavailable: %v\n", err)
	}
	defer buildLog.Close()

	enabled := indexer.DefaultProgressEnabled() && !*noProgress
	ix, err := indexer.NewIndexer(cfg, indexer.NewProgress(enabled), buildLog)
	if err != nil {
		log.Fatalf("Failed to create indexer: %v", err)
	}
	defer ix.Close()

	startTime := time.Now()
	result, err := ix.IndexVault(context.Background())
	if err != nil {
		log.Fatalf("Indexing failed: %v", err)
	}
	duration := time.Since(startTime)

	fmt.Println()
	fmt.Println("✅ Indexing completed successfully!")
	fmt.Printf("\n⏱️  Duration: %v\n", duration)
	fmt.Println("\n📊 Statistics:")
	fmt.Printf("   Files:      %6d\n", result.Files)
	fmt.Printf("   Documents:  %6d\n", result.Docs)
	fmt.Printf("   Chunks:     %6d\n", result.Chunks)
	fmt.Printf("   Embeddings: %6d\n", result.Embeddings)
}
