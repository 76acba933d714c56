package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// VectorStore persists embedding vectors in SQLite.
// Insertion order is preserved by rowid; LoadAll returns vectors in that
// order so the in-memory matrix rows line up with their ids.
type VectorStore struct {
	db *DB
}

// NewVectorStore creates a vector store backed by db
func NewVectorStore(db *DB) *VectorStore {
	return &VectorStore{db: db}
}

// InsertBatch inserts vectors for the given chunk ids in a single transaction.
// ids and vectors must be the same length.
func (s *VectorStore) InsertBatch(ids []string, vectors [][]float32, model string) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids/vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO embeddings (chunk_id, vector, dimension, model) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		blob := vectorToBlob(vectors[i])
		if _, err := stmt.Exec(id, blob, len(vectors[i]), model); err != nil {
			return fmt.Errorf("failed to insert vector for %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// LoadAll returns every stored vector with its chunk id, ordered by rowid.
func (s *VectorStore) LoadAll() ([]string, [][]float32, error) {
	rows, err := s.db.conn.Query(
		"SELECT chunk_id, vector, dimension FROM embeddings ORDER BY rowid")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer rows.Close()

	var ids []string
	var vectors [][]float32
	for rows.Next() {
		var id string
		var blob []byte
		var dim int
		if err := rows.Scan(&id, &blob, &dim); err != nil {
			return nil, nil, fmt.Errorf("failed to scan embedding: %w", err)
		}
		vec, err := blobToVector(blob)
		if err != nil {
			return nil, nil, fmt.Errorf("corrupt vector for %s: %w", id, err)
		}
		if len(vec) != dim {
			return nil, nil, fmt.Errorf("vector for %s has %d dimensions, expected %d", id, len(vec), dim)
		}
		ids = append(ids, id)
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate embeddings: %w", err)
	}

	return ids, vectors, nil
}

// Count returns the number of stored vectors
func (s *VectorStore) Count() (int, error) {
	var count int
	if err := s.db.conn.QueryRow("SELECT COUNT(*) FROM embeddings").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return count, nil
}

// vectorToBlob encodes a float32 vector as little-endian bytes
func vectorToBlob(vec []float32) []byte {
	blob := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// blobToVector decodes little-endian bytes back into a float32 vector
func blobToVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 4", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
