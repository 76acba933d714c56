package internal

import (
	"fmt"
	"os"
)

const Version = "0.1.0"

// PrintUsage writes the top-level help text to stderr
func PrintUsage() {
	fmt.Fprintf(os.Stderr, `vaultindex - Hybrid Retrieval for an Obsidian Vault

Version: %s

USAGE:
    vaultindex [global options] <command> [command options]

GLOBAL OPTIONS:
    -config <path>
        Path to config file (default: ~/.vaultindex/config/vaultindex.yaml)

    -vault <path>
        Override vault path

    -v, -version
        Show version information

    -h, -help
        Show this help message

COMMANDS:
    index
        Build the chunk store, lexical index and embeddings from the vault

    serve
        Run the HTTP retrieval server (GET /get_chunks?query=...)

    search
        Run a hybrid search from the terminal

    stats
        Show index statistics

EXAMPLES:
    # Build the index
    vaultindex index

    # Index a specific vault
    vaultindex -vault ~/notes index

    # Start the server
    vaultindex serve

    # One-shot search
    vaultindex search "how do I brew pour over coffee"

    # JSON output for scripting
    vaultindex search "kubernetes setup" -json

    # Show statistics
    vaultindex stats

For detailed help on each command, use:
    vaultindex <command> -help
`, Version)
}

// PrintConfigExample points at the template the index command can create
func PrintConfigExample() {
	fmt.Fprintf(os.Stderr, `Run 'vaultindex index' once to create a commented config template,
then edit vault.path and the embedding section for your environment.
`)
}
