package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Record types stored in the chunk table.
const (
	TypeDoc   = "doc"
	TypeChunk = "chunk"
)

// ErrChunkNotFound is returned when a chunk id does not resolve in the store.
// An id handed out by a retrieval index must always resolve; callers treat a
// miss as a data-integrity failure, not an empty result.
var ErrChunkNotFound = errors.New("chunk not found")

// Chunk is one vault record: a whole document or a bullet excerpt of one.
type Chunk struct {
	ID    string // <path> for docs, <path>-<seq> for chunks
	Title string // note title (file stem)
	Type  string // TypeDoc or TypeChunk
	Path  string // vault-relative source file path
	Text  string
}

// ChunkStore persists vault records in SQLite
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a chunk store backed by db
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// Get returns the chunk with the given id.
// Returns ErrChunkNotFound if the id does not exist.
func (s *ChunkStore) Get(id string) (*Chunk, error) {
	row := s.db.conn.QueryRow(
		"SELECT id, title, type, path, text FROM chunks WHERE id = ?", id)

	var c Chunk
	if err := row.Scan(&c.ID, &c.Title, &c.Type, &c.Path, &c.Text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrChunkNotFound, id)
		}
		return nil, fmt.Errorf("failed to get chunk %s: %w", id, err)
	}
	return &c, nil
}

// GetByIDs returns the chunks for the given ids, keyed by id.
// Missing ids are simply absent from the result map.
func (s *ChunkStore) GetByIDs(ids []string) (map[string]*Chunk, error) {
	result := make(map[string]*Chunk, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.conn.Query(
		"SELECT id, title, type, path, text FROM chunks WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.Title, &c.Type, &c.Path, &c.Text); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		result[c.ID] = &c
	}
	return result, rows.Err()
}

// InsertBatch inserts chunks in a single transaction
func (s *ChunkStore) InsertBatch(chunks []*Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO chunks (id, title, type, path, text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.Exec(c.ID, c.Title, c.Type, c.Path, c.Text); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// Count returns the total number of records
func (s *ChunkStore) Count() (int, error) {
	var count int
	if err := s.db.conn.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// CountByType returns the number of records with the given type
func (s *ChunkStore) CountByType(recordType string) (int, error) {
	var count int
	if err := s.db.conn.QueryRow(
		"SELECT COUNT(*) FROM chunks WHERE type = ?", recordType).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", recordType, err)
	}
	return count, nil
}
