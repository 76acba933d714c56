package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vaultindex.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromFileDefaults(t *testing.T) {
	path := writeConfig(t, `
vault:
  path: /notes
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Vault.MinDocLines != 5 {
		t.Errorf("MinDocLines = %d, want 5", cfg.Vault.MinDocLines)
	}
	if cfg.Vault.MinChunkLines != 3 {
		t.Errorf("MinChunkLines = %d, want 3", cfg.Vault.MinChunkLines)
	}
	if cfg.Embedding.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Model != "nomic-embed-text" {
		t.Errorf("Model = %q, want nomic-embed-text", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("Dimensions = %d, want 768", cfg.Embedding.Dimensions)
	}
	if cfg.Search.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.Search.TopK)
	}
	if cfg.Search.RankWeight != 10 {
		t.Errorf("RankWeight = %d, want 10", cfg.Search.RankWeight)
	}
	if cfg.Search.MaxTokens != 3200 {
		t.Errorf("MaxTokens = %d, want 3200", cfg.Search.MaxTokens)
	}
	if cfg.Search.TokenizerModel != "gpt-3.5-turbo" {
		t.Errorf("TokenizerModel = %q, want gpt-3.5-turbo", cfg.Search.TokenizerModel)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("Addr = %q, want :8000", cfg.Server.Addr)
	}
	wantOrigins := []string{"app://obsidian.md", "http://localhost"}
	if len(cfg.Server.AllowedOrigins) != len(wantOrigins) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.Server.AllowedOrigins, wantOrigins)
	}
	for i, o := range wantOrigins {
		if cfg.Server.AllowedOrigins[i] != o {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.Server.AllowedOrigins[i], o)
		}
	}
	if cfg.Data.Dir == "" {
		t.Error("Data.Dir should have a default")
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if !IsConfigNotFound(err) {
		t.Errorf("expected ConfigNotFoundError, got %T: %v", err, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing vault path",
			mutate:  func(c *Config) { c.Vault.Path = "" },
			wantErr: "vault.path",
		},
		{
			name: "openai without api key",
			mutate: func(c *Config) {
				c.Embedding.Provider = "openai"
				c.Embedding.APIKey = ""
			},
			wantErr: "api_key",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Embedding.Provider = "azure" },
			wantErr: "unsupported embedding provider",
		},
		{
			name:    "zero dimensions",
			mutate:  func(c *Config) { c.Embedding.Dimensions = -1 },
			wantErr: "dimensions",
		},
		{
			name:    "batch size too large",
			mutate:  func(c *Config) { c.Embedding.BatchSize = 200 },
			wantErr: "batch_size",
		},
		{
			name:    "negative top_k",
			mutate:  func(c *Config) { c.Search.TopK = -1 },
			wantErr: "top_k",
		},
		{
			name:    "negative max_tokens",
			mutate:  func(c *Config) { c.Search.MaxTokens = -1 },
			wantErr: "max_tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Vault: VaultConfig{Path: "/notes"},
				Embedding: EmbeddingConfig{
					Provider:   "ollama",
					Model:      "nomic-embed-text",
					Dimensions: 768,
					BatchSize:  16,
				},
				Search: SearchConfig{TopK: 10, RankWeight: 10, MaxTokens: 3200},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/vault", filepath.Join(home, "vault")},
		{"~", home},
		{"$HOME/vault", filepath.Join(home, "vault")},
		{"/absolute/vault", "/absolute/vault"},
		{"relative/vault", "relative/vault"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteDefaultTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "vaultindex.yaml")

	created, err := WriteDefaultTemplate(path)
	if err != nil {
		t.Fatalf("WriteDefaultTemplate failed: %v", err)
	}
	if !created {
		t.Error("expected template to be created")
	}

	// Second call must not overwrite
	created, err = WriteDefaultTemplate(path)
	if err != nil {
		t.Fatalf("WriteDefaultTemplate second call failed: %v", err)
	}
	if created {
		t.Error("expected template not to be re-created")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read template: %v", err)
	}
	if !strings.Contains(string(data), "allowed_origins") {
		t.Error("template should mention allowed_origins")
	}
}

func TestDataPaths(t *testing.T) {
	d := DataConfig{Dir: "/data"}
	if got := d.DBPath(); got != filepath.Join("/data", "vault.db") {
		t.Errorf("DBPath = %q", got)
	}
	if got := d.LexicalDir(); got != filepath.Join("/data", "lexical.bleve") {
		t.Errorf("LexicalDir = %q", got)
	}
}
