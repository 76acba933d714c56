package lexical

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// TextDoc is the shape of a record in the lexical index
type TextDoc struct {
	Title  string `json:"title"`
	Header string `json:"header"` // first line of the chunk, usually its section header
	Text   string `json:"text"`
	Type   string `json:"type"` // "doc" or "chunk"
}

// Index wraps a bleve index over vault records
type Index struct {
	index bleve.Index
}

// Create creates a fresh lexical index at dir, removing any previous one
func Create(dir string) (*Index, error) {
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("reset lexical index dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lexical index dir: %w", err)
	}
	index, err := bleve.New(dir, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return &Index{index: index}, nil
}

// Open opens an existing lexical index at dir
func Open(dir string) (*Index, error) {
	index, err := bleve.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open bleve index: %w", err)
	}
	return &Index{index: index}, nil
}

// NewMemOnly creates an in-memory index, used by tests
func NewMemOnly() (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create in-memory bleve index: %w", err)
	}
	return &Index{index: index}, nil
}

// IndexDoc adds or replaces a record
func (ix *Index) IndexDoc(id string, doc TextDoc) error {
	return ix.index.Index(id, doc)
}

// Close closes the underlying index
func (ix *Index) Close() error {
	return ix.index.Close()
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "en"
	indexMapping.DefaultField = "text"

	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Store = true
	titleField.Index = true
	docMapping.AddFieldMappingsAt("title", titleField)

	headerField := bleve.NewTextFieldMapping()
	headerField.Store = true
	headerField.Index = true
	docMapping.AddFieldMappingsAt("header", headerField)

	textField := bleve.NewTextFieldMapping()
	textField.Store = false
	textField.Index = true
	docMapping.AddFieldMappingsAt("text", textField)

	typeField := bleve.NewTextFieldMapping()
	typeField.Store = true
	typeField.Index = true
	typeField.Analyzer = "keyword"
	docMapping.AddFieldMappingsAt("type", typeField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}
