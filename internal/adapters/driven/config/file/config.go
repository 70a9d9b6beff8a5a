// Package file loads blograg configuration from a TOML file with
// environment variable overrides for credentials.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigDir is the directory under the user's home.
const DefaultConfigDir = ".blograg"

// configFile is the file name within the config directory.
const configFile = "config.toml"

// Config is the full application configuration.
type Config struct {
	Source   SourceConfig   `toml:"source"`
	Chunking ChunkingConfig `toml:"chunking"`
	Chroma   ChromaConfig   `toml:"chroma"`
	LLM      LLMConfig      `toml:"llm"`
	Data     DataConfig     `toml:"data"`
}

// SourceConfig identifies the blog repository.
type SourceConfig struct {
	Owner     string `toml:"owner"`
	Repo      string `toml:"repo"`
	PostsPath string `toml:"posts_path"`
	Token     string `toml:"token"`
}

// ChunkingConfig controls the text splitter.
type ChunkingConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
}

// ChromaConfig locates the vector store.
type ChromaConfig struct {
	URL        string `toml:"url"`
	Collection string `toml:"collection"`
}

// LLMConfig configures the completion service.
type LLMConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// DataConfig locates local state (run history database).
type DataConfig struct {
	Dir string `toml:"dir"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	return Config{
		Source:   SourceConfig{PostsPath: "_posts"},
		Chunking: ChunkingConfig{ChunkSize: 500, ChunkOverlap: 100},
		Chroma:   ChromaConfig{URL: "http://localhost:8000", Collection: "blog_content"},
		LLM:      LLMConfig{BaseURL: "https://api.deepseek.com/v1", Model: "deepseek-chat"},
	}
}

// Load reads the configuration file from configDir (defaulting to
// ~/.blograg) and applies environment overrides. A missing file is not
// an error; defaults apply.
func Load(configDir string) (Config, error) {
	cfg := DefaultConfig()

	dir, err := resolveDir(configDir)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults plus environment are enough to run.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.Data.Dir == "" {
		cfg.Data.Dir = filepath.Join(dir, "data")
	}
	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the configuration to configDir, creating it with owner-only
// permissions.
func Save(configDir string, cfg Config) error {
	dir, err := resolveDir(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// resolveDir expands an empty configDir to ~/.blograg.
func resolveDir(configDir string) (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir), nil
}

// applyEnv overrides credentials and endpoints from the environment.
// Environment always wins over the file, so secrets can stay out of it.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Source.Token = v
	}
	if v := os.Getenv("BLOGRAG_CHROMA_URL"); v != "" {
		cfg.Chroma.URL = v
	}
	if v := os.Getenv("BLOGRAG_SOURCE_OWNER"); v != "" {
		cfg.Source.Owner = v
	}
	if v := os.Getenv("BLOGRAG_SOURCE_REPO"); v != "" {
		cfg.Source.Repo = v
	}
}
