package retrieval

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vaultindex/vaultindex/internal/store"
)

// Hit is one ranked result from a retrieval source. Rank is the 0-based
// position within that source's result list.
type Hit struct {
	ID   string
	Rank int
}

// ScoredChunk is a chunk id with its combined fusion score
type ScoredChunk struct {
	ID    string
	Score int
}

// ContextChunk is one element of the assembled answer context
type ContextChunk struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// IntegrityError reports a chunk id returned by an index that does not
// resolve in the chunk store.
type IntegrityError struct {
	ID string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("chunk %s missing from store", e.ID)
}

// FuseHits combines ranked hits from any number of sources into a single
// ordering. Each hit contributes weight-rank to its chunk's score; scores
// for the same id are summed. Low and negative contributions still count.
// Ordering is by descending score, ties broken by ascending id so results
// are deterministic.
func FuseHits(hits []Hit, weight int) []ScoredChunk {
	if len(hits) == 0 {
		return nil
	}

	scores := make(map[string]int, len(hits))
	for _, h := range hits {
		scores[h.ID] += weight - h.Rank
	}

	fused := make([]ScoredChunk, 0, len(scores))
	for id, score := range scores {
		fused = append(fused, ScoredChunk{ID: id, Score: score})
	}

	sort.Slice(fused, func(a, b int) bool {
		if fused[a].Score != fused[b].Score {
			return fused[a].Score > fused[b].Score
		}
		return fused[a].ID < fused[b].ID
	})

	return fused
}

// ChunkSource resolves chunk ids to stored records
type ChunkSource interface {
	Get(id string) (*store.Chunk, error)
}

// TokenCounter counts tokens the way the downstream model would
type TokenCounter interface {
	Count(text string) int
}

// AssembleContext walks the fused ordering and keeps chunks until the
// token budget is exceeded. The first chunk that would push the running
// total past maxTokens ends the walk; everything before it is returned.
// A chunk id that does not resolve aborts the whole assembly with an
// IntegrityError.
func AssembleContext(scored []ScoredChunk, chunks ChunkSource, counter TokenCounter, maxTokens int) ([]ContextChunk, error) {
	result := make([]ContextChunk, 0, len(scored))
	total := 0

	for _, sc := range scored {
		chunk, err := chunks.Get(sc.ID)
		if err != nil {
			if errors.Is(err, store.ErrChunkNotFound) {
				return nil, &IntegrityError{ID: sc.ID}
			}
			return nil, fmt.Errorf("load chunk %s: %w", sc.ID, err)
		}

		total += counter.Count(chunk.Text)
		if total > maxTokens {
			break
		}
		result = append(result, ContextChunk{Title: chunk.Title, Text: chunk.Text})
	}

	return result, nil
}
