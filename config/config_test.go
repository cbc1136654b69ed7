package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Analyze.TopKeywords != 5 {
		t.Errorf("expected TopKeywords=5, got %d", cfg.Analyze.TopKeywords)
	}
	if cfg.Classifier.Provider != "lexicon" {
		t.Errorf("expected Provider=lexicon, got %s", cfg.Classifier.Provider)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("expected Workers=4, got %d", cfg.Batch.Workers)
	}
	if cfg.Classifier.CacheSize != 512 {
		t.Errorf("expected CacheSize=512, got %d", cfg.Classifier.CacheSize)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected Addr=:8080, got %s", cfg.Server.Addr)
	}
	if cfg.Auth.Enabled {
		t.Error("expected auth disabled by default")
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "senti.yaml")

	content := `
analyze:
  top_keywords: 8
classifier:
  provider: openai
  model: gpt-4o
batch:
  workers: 2
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Analyze.TopKeywords != 8 {
		t.Errorf("expected TopKeywords=8, got %d", cfg.Analyze.TopKeywords)
	}
	if cfg.Classifier.Provider != "openai" {
		t.Errorf("expected Provider=openai, got %s", cfg.Classifier.Provider)
	}
	if cfg.Classifier.Model != "gpt-4o" {
		t.Errorf("expected Model=gpt-4o, got %s", cfg.Classifier.Model)
	}
	if cfg.Batch.Workers != 2 {
		t.Errorf("expected Workers=2, got %d", cfg.Batch.Workers)
	}
	// Untouched sections keep defaults
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default Addr, got %s", cfg.Server.Addr)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "senti.yaml")

	content := `
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}
}

func TestHistoryDBPath(t *testing.T) {
	cfg := DefaultConfig()
	path := cfg.HistoryDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".senti", "history.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}

	cfg.Store.Path = "/tmp/custom.db"
	if got := cfg.HistoryDBPath("/home/user/project"); got != "/tmp/custom.db" {
		t.Errorf("expected store path override, got %s", got)
	}
}
