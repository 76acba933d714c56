package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/vaultindex/vaultindex/internal/retrieval"
)

// ChunkGetter is the retrieval pipeline seen from the HTTP boundary
type ChunkGetter interface {
	GetChunks(ctx context.Context, query string) ([]retrieval.ContextChunk, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleGetChunks serves GET /get_chunks?query=...
func handleGetChunks(retriever ChunkGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if strings.TrimSpace(query) == "" {
			writeError(w, http.StatusBadRequest, "query parameter is required")
			return
		}

		chunks, err := retriever.GetChunks(r.Context(), query)
		if err != nil {
			var integrity *retrieval.IntegrityError
			switch {
			case errors.As(err, &integrity):
				log.Printf("get_chunks: index out of sync with store: %v", err)
				writeError(w, http.StatusInternalServerError, "index out of sync with chunk store")
			default:
				// Lexical or semantic collaborator failed; the wrapped
				// error names which one.
				log.Printf("get_chunks: retrieval failed: %v", err)
				writeError(w, http.StatusBadGateway, "retrieval backend failed")
			}
			return
		}

		if chunks == nil {
			chunks = []retrieval.ContextChunk{}
		}
		writeJSON(w, http.StatusOK, chunks)
	}
}

// handleHealthz reports liveness
func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
