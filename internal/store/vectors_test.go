package store

import (
	"math"
	"testing"
)

func TestVectorBlobRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		vec  []float32
	}{
		{"empty", []float32{}},
		{"single", []float32{3.14}},
		{"typical", []float32{0.1, -0.5, 0.999, 0}},
		{"extremes", []float32{math.MaxFloat32, -math.MaxFloat32, math.SmallestNonzeroFloat32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := vectorToBlob(tt.vec)
			if len(blob) != len(tt.vec)*4 {
				t.Fatalf("blob length = %d, want %d", len(blob), len(tt.vec)*4)
			}
			got, err := blobToVector(blob)
			if err != nil {
				t.Fatalf("blobToVector failed: %v", err)
			}
			if len(got) != len(tt.vec) {
				t.Fatalf("round trip length = %d, want %d", len(got), len(tt.vec))
			}
			for i := range tt.vec {
				if got[i] != tt.vec[i] {
					t.Errorf("element %d = %v, want %v", i, got[i], tt.vec[i])
				}
			}
		})
	}
}

func TestBlobToVectorCorrupt(t *testing.T) {
	if _, err := blobToVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for blob length not divisible by 4")
	}
}

func TestVectorStoreLoadAllPreservesOrder(t *testing.T) {
	db := openTestDB(t)
	cs := NewChunkStore(db)
	vs := NewVectorStore(db)

	chunks := []*Chunk{
		{ID: "c.md-0", Title: "c", Type: TypeChunk, Path: "c.md", Text: "gamma"},
		{ID: "a.md-0", Title: "a", Type: TypeChunk, Path: "a.md", Text: "alpha"},
		{ID: "b.md-0", Title: "b", Type: TypeChunk, Path: "b.md", Text: "beta"},
	}
	if err := cs.InsertBatch(chunks); err != nil {
		t.Fatalf("chunk InsertBatch failed: %v", err)
	}

	// Insert in two batches; load order must follow insertion, not id order.
	if err := vs.InsertBatch(
		[]string{"c.md-0", "a.md-0"},
		[][]float32{{1, 0}, {0, 1}},
		"test-model",
	); err != nil {
		t.Fatalf("first InsertBatch failed: %v", err)
	}
	if err := vs.InsertBatch(
		[]string{"b.md-0"},
		[][]float32{{0.5, 0.5}},
		"test-model",
	); err != nil {
		t.Fatalf("second InsertBatch failed: %v", err)
	}

	ids, vectors, err := vs.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	wantIDs := []string{"c.md-0", "a.md-0", "b.md-0"}
	if len(ids) != len(wantIDs) {
		t.Fatalf("LoadAll returned %d ids, want %d", len(ids), len(wantIDs))
	}
	for i, want := range wantIDs {
		if ids[i] != want {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want)
		}
	}
	if len(vectors) != 3 || vectors[0][0] != 1 || vectors[1][1] != 1 {
		t.Errorf("vectors do not match insertion order: %v", vectors)
	}

	count, err := vs.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestVectorStoreLengthMismatch(t *testing.T) {
	db := openTestDB(t)
	vs := NewVectorStore(db)

	err := vs.InsertBatch([]string{"a", "b"}, [][]float32{{1}}, "test-model")
	if err == nil {
		t.Error("expected error for mismatched ids/vectors lengths")
	}
}
