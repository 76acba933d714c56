package retrieval

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vaultindex/vaultindex/internal/store"
)

func TestFuseHitsScoring(t *testing.T) {
	// A at rank 0 in one source and rank 1 in the other: (10-0)+(10-1) = 19.
	// B at rank 0 in one source only: 10. C at rank 1 in one source: 9.
	hits := []Hit{
		{ID: "A", Rank: 0},
		{ID: "C", Rank: 1},
		{ID: "B", Rank: 0},
		{ID: "A", Rank: 1},
	}

	fused := FuseHits(hits, 10)

	want := []ScoredChunk{
		{ID: "A", Score: 19},
		{ID: "B", Score: 10},
		{ID: "C", Score: 9},
	}
	if len(fused) != len(want) {
		t.Fatalf("got %d fused chunks, want %d: %v", len(fused), len(want), fused)
	}
	for i := range want {
		if fused[i] != want[i] {
			t.Errorf("fused[%d] = %+v, want %+v", i, fused[i], want[i])
		}
	}
}

func TestFuseHitsEmpty(t *testing.T) {
	if got := FuseHits(nil, 10); got != nil {
		t.Errorf("FuseHits(nil) = %v, want nil", got)
	}
}

func TestFuseHitsDeterministicTieBreak(t *testing.T) {
	hits := []Hit{
		{ID: "zebra", Rank: 2},
		{ID: "apple", Rank: 2},
		{ID: "mango", Rank: 2},
	}

	fused := FuseHits(hits, 10)
	want := []string{"apple", "mango", "zebra"}
	for i, w := range want {
		if fused[i].ID != w {
			t.Errorf("fused[%d].ID = %q, want %q (ties break on id)", i, fused[i].ID, w)
		}
	}
}

func TestFuseHitsNegativeContributions(t *testing.T) {
	// Ranks beyond the weight still participate with negative scores
	hits := []Hit{
		{ID: "deep", Rank: 15},
		{ID: "shallow", Rank: 0},
	}

	fused := FuseHits(hits, 10)
	if len(fused) != 2 {
		t.Fatalf("got %d chunks, want 2 (negative scores are not excluded)", len(fused))
	}
	if fused[0].ID != "shallow" || fused[1].ID != "deep" {
		t.Errorf("order = %v, want shallow before deep", fused)
	}
	if fused[1].Score != -5 {
		t.Errorf("deep score = %d, want -5", fused[1].Score)
	}
}

// fakeChunks resolves ids from a map, missing ids get ErrChunkNotFound
type fakeChunks map[string]*store.Chunk

func (f fakeChunks) Get(id string) (*store.Chunk, error) {
	c, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrChunkNotFound, id)
	}
	return c, nil
}

// wordCounter counts whitespace-separated words as tokens
type wordCounter struct{}

func (wordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

func TestAssembleContextBudget(t *testing.T) {
	chunks := fakeChunks{
		"A": {ID: "A", Title: "a", Text: "one two three"},       // 3 tokens
		"B": {ID: "B", Title: "b", Text: "four five"},           // 2 tokens
		"C": {ID: "C", Title: "c", Text: "six seven eight nine"}, // 4 tokens
	}
	scored := []ScoredChunk{{ID: "A", Score: 19}, {ID: "B", Score: 10}, {ID: "C", Score: 9}}

	// Budget 5 fits A (3) and B (5 total); C would push to 9.
	got, err := AssembleContext(scored, chunks, wordCounter{}, 5)
	if err != nil {
		t.Fatalf("AssembleContext failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(got), got)
	}
	if got[0].Title != "a" || got[1].Title != "b" {
		t.Errorf("order = %v, want a then b", got)
	}
}

func TestAssembleContextExactBudget(t *testing.T) {
	chunks := fakeChunks{"A": {ID: "A", Title: "a", Text: "one two three"}}
	scored := []ScoredChunk{{ID: "A", Score: 10}}

	// A total exactly at the budget is kept
	got, err := AssembleContext(scored, chunks, wordCounter{}, 3)
	if err != nil {
		t.Fatalf("AssembleContext failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d chunks, want 1 (exact budget fits)", len(got))
	}
}

func TestAssembleContextBudgetTooSmall(t *testing.T) {
	chunks := fakeChunks{"A": {ID: "A", Title: "a", Text: "one two three four"}}
	scored := []ScoredChunk{{ID: "A", Score: 10}}

	got, err := AssembleContext(scored, chunks, wordCounter{}, 2)
	if err != nil {
		t.Fatalf("AssembleContext failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d chunks, want 0 when nothing fits", len(got))
	}
}

func TestAssembleContextEmpty(t *testing.T) {
	got, err := AssembleContext(nil, fakeChunks{}, wordCounter{}, 100)
	if err != nil {
		t.Fatalf("AssembleContext failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d chunks, want 0", len(got))
	}
}

func TestAssembleContextIntegrityError(t *testing.T) {
	chunks := fakeChunks{"A": {ID: "A", Title: "a", Text: "one"}}
	scored := []ScoredChunk{{ID: "A", Score: 19}, {ID: "GHOST", Score: 10}}

	_, err := AssembleContext(scored, chunks, wordCounter{}, 100)
	if err == nil {
		t.Fatal("expected integrity error")
	}
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %T: %v", err, err)
	}
	if integrity.ID != "GHOST" {
		t.Errorf("IntegrityError.ID = %q, want GHOST", integrity.ID)
	}
}
