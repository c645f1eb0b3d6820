package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend Backend `yaml:"backend"`
	Tokens  Tokens  `yaml:"tokens"`
	Paging  Paging  `yaml:"paging"`
}

type Backend struct {
	// BaseURL is the root of the Star Award REST API, including the
	// trailing /api/ segment, e.g. http://127.0.0.1:8000/api/.
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Tokens struct {
	File string `yaml:"file"`
	// EncryptionKey is an optional hex-encoded 32-byte key. When set,
	// tokens are encrypted at rest with AES-256-GCM.
	EncryptionKey string `yaml:"encryption_key"`
}

type Paging struct {
	BrowsePageSize int `yaml:"browse_page_size"`
	VotingPageSize int `yaml:"voting_page_size"`
}

// Load reads configuration from an optional YAML file, layering env-var
// overrides on top of defaults. A .env file in the working directory is
// loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Backend: Backend{
			BaseURL: "http://127.0.0.1:8000/api/",
			Timeout: 30 * time.Second,
		},
		Tokens: Tokens{
			File: defaultTokenFile(),
		},
		Paging: Paging{
			BrowsePageSize: 15,
			VotingPageSize: 6,
		},
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tokens.yaml"
	}
	return filepath.Join(dir, "starward", "tokens.yaml")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STARWARD_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("STARWARD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Backend.Timeout = d
		}
	}
	if v := os.Getenv("STARWARD_TOKEN_FILE"); v != "" {
		cfg.Tokens.File = v
	}
	if v := os.Getenv("STARWARD_ENCRYPTION_KEY"); v != "" {
		cfg.Tokens.EncryptionKey = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url must not be empty")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if c.Tokens.File == "" {
		return fmt.Errorf("tokens.file must not be empty")
	}
	if c.Paging.BrowsePageSize <= 0 {
		return fmt.Errorf("paging.browse_page_size must be positive")
	}
	if c.Paging.VotingPageSize <= 0 {
		return fmt.Errorf("paging.voting_page_size must be positive")
	}
	return nil
}
