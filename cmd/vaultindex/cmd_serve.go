package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vaultindex/vaultindex/internal/config"
	"github.com/vaultindex/vaultindex/internal/server"
)

// handleServe implements the serve subcommand
func handleServe(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "Listen address (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `USAGE:
    vaultindex serve [options]

DESCRIPTION:
    Run the HTTP retrieval server. Routes:
      GET /get_chunks?query=...   ranked, token-budgeted chunks as JSON
      GET /healthz                liveness check

    Cross-origin requests are only allowed from the configured
    server.allowed_origins list.

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
EXAMPLES:
    # Serve on the configured address
    vaultindex serve

    # Serve on a different port
    vaultindex serve -addr :9000
`)
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	rt, err := newRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize retrieval: %v", err)
	}
	defer rt.Close()

	srv := server.New(listenAddr, cfg.Server.AllowedOrigins, rt.retriever)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
