package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for senti.
type Config struct {
	Analyze    AnalyzeConfig    `yaml:"analyze"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Batch      BatchConfig      `yaml:"batch"`
	Store      StoreConfig      `yaml:"store"`
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AnalyzeConfig holds keyword extraction settings.
type AnalyzeConfig struct {
	TopKeywords   int `yaml:"top_keywords"`
	MaxInputRunes int `yaml:"max_input_runes"`
}

// ClassifierConfig holds sentiment classifier settings.
type ClassifierConfig struct {
	Provider       string `yaml:"provider"`    // "lexicon", "openai"
	Model          string `yaml:"model"`       // e.g., "gpt-4o-mini"
	BaseURL        string `yaml:"base_url"`    // OpenAI-compatible endpoint
	APIKeyEnv      string `yaml:"api_key_env"` // Environment variable for API key
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	BreakerMax     int    `yaml:"breaker_max_failures"`
	BreakerOpenSec int    `yaml:"breaker_open_seconds"`
	CacheSize      int    `yaml:"cache_size"`
	CacheTTLSec    int    `yaml:"cache_ttl_seconds"`
}

// BatchConfig holds batch analysis settings.
type BatchConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	Workers  int      `yaml:"workers"`
}

// StoreConfig holds result history settings.
type StoreConfig struct {
	Path string `yaml:"path"` // overrides <dir>/.senti/history.db
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  int    `yaml:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds"`
	IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	EnableCORS   bool   `yaml:"enable_cors"`
}

// AuthConfig holds identity backend settings.
type AuthConfig struct {
	Enabled        bool   `yaml:"enabled"`
	BaseURL        string `yaml:"base_url"`
	APIKeyEnv      string `yaml:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration. The defaults work
// offline: lexicon classifier, no auth, local bolt history.
func DefaultConfig() *Config {
	return &Config{
		Analyze: AnalyzeConfig{
			TopKeywords:   5,
			MaxInputRunes: 2000,
		},
		Classifier: ClassifierConfig{
			Provider:       "lexicon",
			Model:          "gpt-4o-mini",
			BaseURL:        "https://api.openai.com/v1",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 30,
			BreakerMax:     5,
			BreakerOpenSec: 30,
			CacheSize:      512,
			CacheTTLSec:    300,
		},
		Batch: BatchConfig{
			Includes: []string{"**/*.txt"},
			Excludes: []string{"**/.senti/**"},
			Workers:  4,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			EnableCORS:   true,
		},
		Auth: AuthConfig{
			Enabled:        false,
			BaseURL:        "",
			APIKeyEnv:      "SENTI_AUTH_API_KEY",
			TimeoutSeconds: 15,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for senti.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try senti.yaml in the directory
	path := filepath.Join(dir, "senti.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .senti/config.yaml
	path = filepath.Join(dir, ".senti", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HistoryDBPath returns the path to the result history database.
func (c *Config) HistoryDBPath(dir string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(dir, ".senti", "history.db")
}

// EnsureSentiDir ensures the .senti directory exists.
func EnsureSentiDir(dir string) error {
	sentiDir := filepath.Join(dir, ".senti")
	return os.MkdirAll(sentiDir, 0755)
}
