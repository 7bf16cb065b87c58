package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Warehouse WarehouseConfig `koanf:"warehouse"`
	Source    SourceConfig    `koanf:"source"`
	Cache     CacheConfig     `koanf:"cache"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	Mode string `koanf:"mode"` // "debug" or "release"
}

// Addr is the host:port the server binds.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // debug | info | warn | error
}

// SlogLevel parses the configured level. Validate guarantees it parses.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Level))
	return level
}

// WarehouseConfig holds the BigQuery connection and query settings. The
// service-account key arrives as individual values, never as a key file.
type WarehouseConfig struct {
	ProjectID    string `koanf:"project_id"`
	PrivateKeyID string `koanf:"private_key_id"`
	PrivateKey   string `koanf:"private_key"`
	ClientEmail  string `koanf:"client_email"`
	TokenURI     string `koanf:"token_uri"`
	Dataset      string `koanf:"dataset"`
	TablePrefix  string `koanf:"table_prefix"`
	WindowDays   int    `koanf:"window_days"`
	FetchTimeout string `koanf:"fetch_timeout"` // parsed and validated on startup
}

// SourceConfig selects between the warehouse and a local CSV fixture.
type SourceConfig struct {
	UseStatic  bool   `koanf:"use_static"`
	StaticPath string `koanf:"static_path"`
}

// CacheConfig holds the redis connection and caching policy.
type CacheConfig struct {
	URL           string `koanf:"url"`
	TTL           string `koanf:"ttl"` // parsed and validated on startup
	MemoizeCharts bool   `koanf:"memoize_charts"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log.level %q (must be debug, info, warn or error)", c.Log.Level)
	}

	if strings.TrimSpace(c.Cache.URL) == "" {
		return fmt.Errorf("cache.url is required")
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return fmt.Errorf("invalid cache.ttl %q: %w", c.Cache.TTL, err)
	}
	if ttl <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}

	if c.Warehouse.WindowDays <= 0 {
		return fmt.Errorf("warehouse.window_days must be > 0")
	}
	timeout, err := time.ParseDuration(c.Warehouse.FetchTimeout)
	if err != nil {
		return fmt.Errorf("invalid warehouse.fetch_timeout %q: %w", c.Warehouse.FetchTimeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("warehouse.fetch_timeout must be > 0")
	}
	if strings.TrimSpace(c.Warehouse.Dataset) == "" {
		return fmt.Errorf("warehouse.dataset is required")
	}
	if strings.TrimSpace(c.Warehouse.TablePrefix) == "" {
		return fmt.Errorf("warehouse.table_prefix is required")
	}

	if c.Source.UseStatic {
		if strings.TrimSpace(c.Source.StaticPath) == "" {
			return fmt.Errorf("source.static_path is required when source.use_static is set")
		}
		if _, err := os.Stat(c.Source.StaticPath); err != nil {
			return fmt.Errorf("source.static_path %q is not accessible: %w", c.Source.StaticPath, err)
		}
		return nil
	}

	// Warehouse credentials are only required when it is actually used.
	required := []struct {
		key   string
		value string
	}{
		{"warehouse.project_id", c.Warehouse.ProjectID},
		{"warehouse.private_key_id", c.Warehouse.PrivateKeyID},
		{"warehouse.private_key", c.Warehouse.PrivateKey},
		{"warehouse.client_email", c.Warehouse.ClientEmail},
		{"warehouse.token_uri", c.Warehouse.TokenURI},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and DASHBOARD_*
// environment variables (double underscore separates sections, so
// DASHBOARD_CACHE__URL sets cache.url), then validates the result.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.host":              "127.0.0.1",
		"server.port":              8050,
		"server.mode":              "release",
		"log.level":                "info",
		"warehouse.project_id":     "",
		"warehouse.private_key_id": "",
		"warehouse.private_key":    "",
		"warehouse.client_email":   "",
		"warehouse.token_uri":      "https://oauth2.googleapis.com/token",
		"warehouse.dataset":        "results",
		"warehouse.table_prefix":   "downloads",
		"warehouse.window_days":    30,
		"warehouse.fetch_timeout":  "60s",
		"source.use_static":        false,
		"source.static_path":       "./data/downloads.csv",
		"cache.url":                "redis://127.0.0.1:6379/0",
		"cache.ttl":                "1h",
		"cache.memoize_charts":     false,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("DASHBOARD_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "DASHBOARD_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
