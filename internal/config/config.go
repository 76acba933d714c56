package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Vault     VaultConfig     `yaml:"vault"`
	Data      DataConfig      `yaml:"data,omitempty"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
}

// VaultConfig holds note-vault specific configuration
type VaultConfig struct {
	// Path to the Obsidian vault root
	Path string `yaml:"path"`

	// Exclude patterns (doublestar globs, matched against relative paths)
	Exclude []string `yaml:"exclude,omitempty"`

	// Documents with fewer lines than this are skipped entirely
	MinDocLines int `yaml:"min_doc_lines,omitempty"`

	// Chunks with fewer lines than this are discarded
	MinChunkLines int `yaml:"min_chunk_lines,omitempty"`
}

// DataConfig holds index storage configuration
type DataConfig struct {
	// Dir is the directory holding the chunk store and lexical index.
	// If empty, uses ~/.vaultindex/data
	Dir string `yaml:"dir,omitempty"`
}

// DBPath returns the path of the SQLite chunk store.
func (d DataConfig) DBPath() string {
	return filepath.Join(d.Dir, "vault.db")
}

// LexicalDir returns the directory of the bleve lexical index.
func (d DataConfig) LexicalDir() string {
	return filepath.Join(d.Dir, "lexical.bleve")
}

// EmbeddingConfig holds embedding service configuration
type EmbeddingConfig struct {
	Provider string `yaml:"provider"` // "openai" | "ollama"

	APIKey   string `yaml:"api_key,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Model    string `yaml:"model"`

	// Embedding parameters
	Dimensions int `yaml:"dimensions"` // Must match the model's output size
	BatchSize  int `yaml:"batch_size"` // Batch size for embedding requests
}

// SearchConfig holds retrieval configuration
type SearchConfig struct {
	TopK           int    `yaml:"top_k,omitempty"`           // Results requested per retrieval source
	RankWeight     int    `yaml:"rank_weight,omitempty"`     // Fusion constant: rank 0 contributes this score
	MaxTokens      int    `yaml:"max_tokens,omitempty"`      // Token budget for assembled context
	TokenizerModel string `yaml:"tokenizer_model,omitempty"` // Model whose tokenizer counts budget tokens
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// Load loads configuration from the default config file
// Default location: ~/.vaultindex/config/vaultindex.yaml
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromFile(configPath)
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".vaultindex", "config", "vaultindex.yaml"), nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			defaultPath, _ := DefaultPath()
			return nil, &ConfigNotFoundError{
				RequestedPath: path,
				DefaultPath:   defaultPath,
			}
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults
	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ConfigNotFoundError is returned when config file is not found
type ConfigNotFoundError struct {
	RequestedPath string
	DefaultPath   string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found at: %s\n\nDefault location: %s\n\nYou can:\n"+
		"  1. Create the config file at the default location\n"+
		"  2. Specify a custom path with -config flag\n"+
		"  3. Run 'vaultindex index' once to write a commented template",
		e.RequestedPath, e.DefaultPath)
}

// IsConfigNotFound checks if error is config not found
func IsConfigNotFound(err error) bool {
	_, ok := err.(*ConfigNotFoundError)
	return ok
}

// expandPath expands ~ and $HOME to the user's home directory
// Supports both:
//
//	~/obsidian-vault
//	$HOME/obsidian-vault
func expandPath(path string) string {
	// Handle $HOME environment variable
	if strings.HasPrefix(path, "$HOME/") || path == "$HOME" {
		homeDir := os.Getenv("HOME")
		if homeDir == "" {
			// Fallback to UserHomeDir if HOME is not set
			var err error
			homeDir, err = os.UserHomeDir()
			if err != nil {
				return path
			}
		}
		if path == "$HOME" {
			return homeDir
		}
		return filepath.Join(homeDir, path[6:])
	}

	// Handle ~ shorthand
	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return homeDir
		}
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() error {
	// Expand ~ in vault path
	if c.Vault.Path != "" {
		c.Vault.Path = expandPath(c.Vault.Path)
	}

	if c.Vault.MinDocLines == 0 {
		c.Vault.MinDocLines = 5
	}
	if c.Vault.MinChunkLines == 0 {
		c.Vault.MinChunkLines = 3
	}
	if len(c.Vault.Exclude) == 0 {
		c.Vault.Exclude = []string{"**/.obsidian/**", "**/.trash/**"}
	}

	// Data directory
	if c.Data.Dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.Data.Dir = filepath.Join(homeDir, ".vaultindex", "data")
	} else {
		c.Data.Dir = expandPath(c.Data.Dir)
	}

	// Embedding defaults
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "ollama"
	}
	if c.Embedding.Model == "" {
		switch c.Embedding.Provider {
		case "ollama":
			c.Embedding.Model = "nomic-embed-text"
		case "openai":
			c.Embedding.Model = "text-embedding-3-small"
		}
	}
	if c.Embedding.Endpoint == "" && c.Embedding.Provider == "ollama" {
		c.Embedding.Endpoint = "http://localhost:11434"
	}
	if c.Embedding.Dimensions == 0 {
		switch c.Embedding.Provider {
		case "ollama":
			c.Embedding.Dimensions = 768
		case "openai":
			c.Embedding.Dimensions = 1536
		}
	}
	if c.Embedding.BatchSize == 0 {
		c.Embedding.BatchSize = 16
	}

	// Search defaults
	if c.Search.TopK == 0 {
		c.Search.TopK = 10
	}
	if c.Search.RankWeight == 0 {
		c.Search.RankWeight = 10
	}
	if c.Search.MaxTokens == 0 {
		c.Search.MaxTokens = 3200
	}
	if c.Search.TokenizerModel == "" {
		c.Search.TokenizerModel = "gpt-3.5-turbo"
	}

	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"app://obsidian.md", "http://localhost"}
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Vault.Path == "" {
		return fmt.Errorf("vault.path is required")
	}

	// Validate embedding configuration based on provider
	switch c.Embedding.Provider {
	case "openai":
		if c.Embedding.APIKey == "" {
			return fmt.Errorf("openai provider requires api_key")
		}
	case "ollama":
		// Local Ollama server needs no credentials
	default:
		return fmt.Errorf("unsupported embedding provider: %s", c.Embedding.Provider)
	}

	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive, got: %d", c.Embedding.Dimensions)
	}

	if c.Embedding.BatchSize <= 0 || c.Embedding.BatchSize > 100 {
		return fmt.Errorf("batch_size must be between 1 and 100, got: %d", c.Embedding.BatchSize)
	}

	if c.Search.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got: %d", c.Search.TopK)
	}
	if c.Search.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got: %d", c.Search.MaxTokens)
	}

	return nil
}

const defaultConfigTemplate = `# vaultindex Configuration
#
# Default location: $HOME/.vaultindex/config/vaultindex.yaml

vault:
  # Path to your Obsidian vault
  path: ~/obsidian-vault

  # Glob patterns excluded from indexing
  # exclude:
  #   - "**/.obsidian/**"
  #   - "**/.trash/**"

  # Files with fewer lines than this are skipped
  # min_doc_lines: 5

  # Chunks with fewer lines than this are discarded
  # min_chunk_lines: 3

embedding:
  # Provider: "ollama" (local) or "openai"
  provider: ollama
  endpoint: http://localhost:11434
  model: nomic-embed-text
  dimensions: 768
  batch_size: 16

  # OpenAI configuration (alternative)
  # provider: openai
  # api_key: your-openai-api-key
  # model: text-embedding-3-small
  # dimensions: 1536
  # batch_size: 100

search:
  top_k: 10
  rank_weight: 10
  max_tokens: 3200
  tokenizer_model: gpt-3.5-turbo

server:
  addr: :8000
  allowed_origins:
    - app://obsidian.md
    - http://localhost
`

// WriteDefaultTemplate creates a default configuration file if it does not exist.
// Returns true if a file was created, false if one already existed.
func WriteDefaultTemplate(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
		return false, fmt.Errorf("failed to write config template: %w", err)
	}

	return true, nil
}
