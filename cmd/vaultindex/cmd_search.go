package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vaultindex/vaultindex/internal/config"
	"github.com/vaultindex/vaultindex/internal/retrieval"
)

// handleSearch implements the search subcommand
func handleSearch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	var jsonOutput bool
	fs.BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    vaultindex search [options] "<query>"

DESCRIPTION:
    Run a hybrid search against the built indexes. Lexical and semantic
    hits are fused by rank and trimmed to the configured token budget,
    exactly as the HTTP server would answer.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    # Natural language search
    vaultindex search "how do I brew pour over coffee"

    # JSON output for scripting
    vaultindex search "kubernetes setup" -json
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: search query is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	query := fs.Arg(0)

	rt, err := newRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize retrieval: %v", err)
	}
	defer rt.Close()

	chunks, err := rt.retriever.GetChunks(context.Background(), query)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	if jsonOutput {
		outputJSON(chunks, query)
	} else {
		outputText(chunks, query)
	}
}

// outputText prints search results as human-readable text
func outputText(chunks []retrieval.ContextChunk, query string) {
	if len(chunks) == 0 {
		fmt.Println("No results found")
		return
	}

	fmt.Printf("Found %d chunk(s) for: %s\n\n", len(chunks), query)
	for i, chunk := range chunks {
		fmt.Printf("%d. %s\n", i+1, chunk.Title)
		text := chunk.Text
		if len(text) > 300 {
			text = text[:300] + "..."
		}
		fmt.Printf("%s\n\n", text)
	}
}

// outputJSON prints search results as JSON
func outputJSON(chunks []retrieval.ContextChunk, query string) {
	output := map[string]interface{}{
		"query":  query,
		"count":  len(chunks),
		"chunks": chunks,
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal results: %v", err)
	}
	fmt.Println(string(jsonData))
}
