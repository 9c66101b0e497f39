package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Completion CompletionConfig `yaml:"completion"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CompletionConfig contains completion service settings.
type CompletionConfig struct {
	APIKey       string `yaml:"-"` // env-only, never in YAML
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url"`
	MaxNewTokens int64  `yaml:"max_new_tokens"`
}

// CatalogConfig contains product catalog settings.
type CatalogConfig struct {
	Path       string `yaml:"path"`
	SampleSize int    `yaml:"sample_size"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	APIKey string `yaml:"-"` // env-only, never in YAML
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// A .env file in the working directory is read first if present.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars still apply
	_ = godotenv.Load()

	cfg := newDefaults()

	// Determine config path
	configPath := getEnv("VITRINE_CONFIG_PATH", "config/vitrine.yaml")

	// Load YAML file if it exists (missing file is not an error)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	// Load YAML file (file must exist for this function)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CatalogSettings is the configuration subset the catalog CLI needs.
type CatalogSettings struct {
	DatabasePath string
	ProductsPath string
}

// LoadCatalogSettings resolves the catalog and database paths with the same
// defaults → YAML → env precedence as Load. Credential validation is skipped
// so catalog maintenance works without a completion API key.
func LoadCatalogSettings() (*CatalogSettings, error) {
	_ = godotenv.Load()

	cfg := newDefaults()

	configPath := getEnv("VITRINE_CONFIG_PATH", "config/vitrine.yaml")
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return &CatalogSettings{
		DatabasePath: cfg.Database.Path,
		ProductsPath: cfg.Catalog.Path,
	}, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			ReadTimeout: Duration(30 * time.Second),
			// Recommendation requests block on the completion
			// provider, so the write timeout is generous.
			WriteTimeout:    Duration(2 * time.Minute),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Path: "data/vitrine.db",
		},
		Completion: CompletionConfig{
			Model:        "gpt-4o-mini",
			MaxNewTokens: 512,
		},
		Catalog: CatalogConfig{
			Path:       "data/products.json",
			SampleSize: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing file is OK; use defaults
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("VITRINE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("VITRINE_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = Duration(d)
		}
	}
	if v := os.Getenv("VITRINE_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = Duration(d)
		}
	}
	if v := os.Getenv("VITRINE_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ShutdownTimeout = Duration(d)
		}
	}

	// Database
	if v := os.Getenv("VITRINE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Completion (OPENAI_API_KEY / OPENAI_BASE_URL are industry convention)
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Completion.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Completion.BaseURL = v
	}
	if v := os.Getenv("VITRINE_COMPLETION_MODEL"); v != "" {
		cfg.Completion.Model = v
	}
	if v := os.Getenv("VITRINE_MAX_NEW_TOKENS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Completion.MaxNewTokens = n
		}
	}

	// Catalog
	if v := os.Getenv("VITRINE_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("VITRINE_SAMPLE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.SampleSize = n
		}
	}

	// Auth
	if v := os.Getenv("VITRINE_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}

	// Log
	if v := os.Getenv("VITRINE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("VITRINE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks that required configuration values are set.
// In dev mode (VITRINE_DEV_MODE=true), API key validation is skipped.
// Auth.APIKey is optional: when unset the HTTP API is open, which is
// the expected posture for a local demo storefront.
func (c *Config) validate() error {
	// Dev mode bypasses API key validation
	if os.Getenv("VITRINE_DEV_MODE") == "true" {
		return nil
	}

	if c.Completion.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.Completion.MaxNewTokens <= 0 {
		return errors.New("completion.max_new_tokens must be positive")
	}
	if c.Catalog.SampleSize < 0 {
		return errors.New("catalog.sample_size must not be negative")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
