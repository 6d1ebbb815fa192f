// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for enclave configuration.
	DefaultConfigDir = ".enclave"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultSQLiteFile is the database file created inside DefaultConfigDir.
	DefaultSQLiteFile = "favorites.db"
	// DefaultOwnerID is the placeholder identity used until real authentication exists.
	DefaultOwnerID = "local-user"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Store    StoreConfig    `yaml:"store,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Client   ClientConfig   `yaml:"client,omitempty"`
	Owner    OwnerConfig    `yaml:"owner,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
	LLM      LLMConfig      `yaml:"llm,omitempty"`
	Embedder EmbedderConfig `yaml:"embedder,omitempty"`
	Qdrant   QdrantConfig   `yaml:"qdrant,omitempty"`
}

// StoreConfig selects and configures the favorites table backend.
type StoreConfig struct {
	Driver   string         `yaml:"driver,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Postgres PostgresConfig `yaml:"postgres,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite relational database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths resolve against the project root.
	Path string `yaml:"path,omitempty"`
}

// PostgresConfig holds configuration for the PostgreSQL relational database.
type PostgresConfig struct {
	DSN          string `yaml:"dsn,omitempty"`
	MaxOpenConns int    `yaml:"max_open_conns,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr,omitempty"`
	AllowedOrigins  []string      `yaml:"allowed_origins,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// ClientConfig configures how the CLI reaches favorites.
// An empty ServerURL means the CLI talks to the store in-process.
type ClientConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	// Timeout is opt-in; zero leaves each request to the transport and the caller's context.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// OwnerConfig holds the placeholder owner identity.
type OwnerConfig struct {
	ID string `yaml:"id,omitempty"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level     string       `yaml:"level,omitempty"`
	Format    string       `yaml:"format,omitempty"` // "text" or "json"
	NoColor   bool         `yaml:"no_color,omitempty"`
	AddSource bool         `yaml:"add_source,omitempty"`
	Fluent    FluentConfig `yaml:"fluent,omitempty"`
}

// FluentConfig configures shipping logs to Fluent Bit / Fluentd.
type FluentConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port,omitempty"`
	Tag     string `yaml:"tag,omitempty"`
}

// LLMConfig holds configuration for the LLM provider.
type LLMConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	// BaseURL points at an OpenAI-compatible endpoint. Empty uses api.openai.com.
	BaseURL string `yaml:"base_url,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	// BaseURL points at an OpenAI-compatible endpoint. Empty uses api.openai.com.
	BaseURL string `yaml:"base_url,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
			SQLite: SQLiteConfig{
				Path: filepath.Join(DefaultConfigDir, DefaultSQLiteFile),
			},
			Postgres: PostgresConfig{
				MaxOpenConns: 10,
			},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"http://localhost:5173"},
			ShutdownTimeout: 10 * time.Second,
		},
		Owner: OwnerConfig{
			ID: DefaultOwnerID,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Fluent: FluentConfig{
				Host: "localhost",
				Port: 24224,
				Tag:  "enclave",
			},
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "enclave_favorites",
		},
	}
}

// Load loads configuration from the .enclave directory in the given path.
// A .env file in basePath is loaded first; a missing config file yields defaults.
func Load(basePath string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(basePath, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(ConfigFilePath(basePath))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	if cfg.Store.SQLite.Path != ":memory:" && !filepath.IsAbs(cfg.Store.SQLite.Path) {
		cfg.Store.SQLite.Path = filepath.Join(basePath, cfg.Store.SQLite.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLite.Path == "" {
			return errors.New("store.sqlite.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.Postgres.DSN == "" {
			return errors.New("store.postgres.dsn (or DATABASE_URL) is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q (use %s or %s)", c.Store.Driver, DriverSQLite, DriverPostgres)
	}

	if strings.TrimSpace(c.Owner.ID) == "" {
		return errors.New("owner.id must not be empty")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (use text or json)", c.Log.Format)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ENCLAVE_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Store.Postgres.DSN = v
	}
	if v := os.Getenv("ENCLAVE_SQLITE_PATH"); v != "" {
		c.Store.SQLite.Path = v
	}
	if v := os.Getenv("ENCLAVE_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ENCLAVE_SERVER_URL"); v != "" {
		c.Client.ServerURL = v
	}
	if v := os.Getenv("ENCLAVE_OWNER_ID"); v != "" {
		c.Owner.ID = v
	}
	if v := os.Getenv("ENCLAVE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if c.LLM.APIKey == "" {
			c.LLM.APIKey = key
		}
		if c.Embedder.APIKey == "" {
			c.Embedder.APIKey = key
		}
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" {
		if c.Qdrant.APIKey == "" {
			c.Qdrant.APIKey = key
		}
	}
}

// ConfigDir returns the path to the .enclave config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
