// Package config loads service configuration from a JSON or YAML file and
// the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration. File values are overridden by the
// environment.
type Config struct {
	Port           int      `json:"port,omitempty" yaml:"port"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins"`

	Log struct {
		Level  string `json:"level,omitempty" yaml:"level"`
		Format string `json:"format,omitempty" yaml:"format"`
	} `json:"log" yaml:"log"`

	// Storage holds the saved resume documents.
	Storage struct {
		Backend  string `json:"backend,omitempty" yaml:"backend"`
		Dir      string `json:"dir,omitempty" yaml:"dir"`
		RedisURL string `json:"redis_url,omitempty" yaml:"redis_url"`
	} `json:"storage" yaml:"storage"`

	// Users holds accounts.
	Users struct {
		Backend       string `json:"backend,omitempty" yaml:"backend"`
		DatabaseURL   string `json:"database_url,omitempty" yaml:"database_url"`
		MongoURI      string `json:"mongo_uri,omitempty" yaml:"mongo_uri"`
		MongoDatabase string `json:"mongo_database,omitempty" yaml:"mongo_database"`
	} `json:"users" yaml:"users"`

	PDF struct {
		Engine     string `json:"engine,omitempty" yaml:"engine"`
		ChromePath string `json:"chrome_path,omitempty" yaml:"chrome_path"`
		// RenderURL is the endpoint export posts documents to. Empty means
		// export renders in-process with Engine.
		RenderURL     string `json:"render_url,omitempty" yaml:"render_url"`
		ExportTimeout int    `json:"export_timeout_seconds,omitempty" yaml:"export_timeout_seconds"`
	} `json:"pdf" yaml:"pdf"`

	GeminiAPIKey string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{Port: 8080}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Storage.Backend = "file"
	cfg.Storage.Dir = "data"
	return cfg
}

// LoadConfig reads path into a copy of Default. The format follows the
// extension: .json, .yaml or .yml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q: use .json, .yaml or .yml", filepath.Ext(path))
	}
	return cfg, nil
}

// Load reads path when non-empty, then applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = p
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.Dir, "STORAGE_DIR")
	setString(&c.Storage.RedisURL, "REDIS_URL")
	setString(&c.Users.Backend, "USER_STORE")
	setString(&c.Users.DatabaseURL, "DATABASE_URL")
	setString(&c.Users.MongoURI, "MONGODB_URI")
	setString(&c.Users.MongoDatabase, "MONGODB_DATABASE")
	setString(&c.PDF.Engine, "PDF_ENGINE")
	setString(&c.PDF.ChromePath, "CHROME_PATH")
	setString(&c.PDF.RenderURL, "PDF_RENDER_URL")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")

	if raw := os.Getenv("EXPORT_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid EXPORT_TIMEOUT_SECONDS: %v", err)
		}
		c.PDF.ExportTimeout = secs
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.PDF.ExportTimeout < 0 {
		return fmt.Errorf("config error: 'export_timeout_seconds' must be non-negative")
	}
	switch c.Storage.Backend {
	case "", "file", "redis", "memory":
	default:
		return fmt.Errorf("config error: unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// ExportTimeoutDuration returns the export client timeout; zero means none.
func (c *Config) ExportTimeoutDuration() time.Duration {
	return time.Duration(c.PDF.ExportTimeout) * time.Second
}
