package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pankajredekar/catalog/internal/storage"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up by the CLI
const DefaultPath = "catalog.yml"

// Environment overrides
const (
	EnvStorageURL = "CATALOG_STORAGE_URL"
	EnvStorageKey = "CATALOG_STORAGE_KEY"
	EnvLogLevel   = "CATALOG_LOG_LEVEL"
)

type Config struct {
	StorageURL string       `yaml:"storage_url"`
	StorageKey string       `yaml:"storage_key"`
	PageSize   int          `yaml:"page_size"`
	Log        LogConfig    `yaml:"log"`
	Upload     UploadConfig `yaml:"upload"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Mode       string `yaml:"mode"`           // development or production
	File       string `yaml:"file,omitempty"` // Optional: rotating log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type UploadConfig struct {
	BaseURL string        `yaml:"base_url"`
	Delay   time.Duration `yaml:"delay"`
}

// Default returns the configuration written by "catalog init"
func Default() *Config {
	cfg := &Config{StorageURL: "file://./data"}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.StorageURL == "" {
		c.StorageURL = "file://./data"
	}
	if c.StorageKey == "" {
		c.StorageKey = "products"
	}
	if c.PageSize == 0 {
		c.PageSize = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Mode == "" {
		c.Log.Mode = "development"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 64
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 7
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 7
	}
	if c.Upload.BaseURL == "" {
		c.Upload.BaseURL = "blob:catalog"
	}
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// .env next to the config file; variables already set win
	dir := filepath.Dir(configPath)
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	cfg.applyEnv()

	cfg.setDefaults()

	// Resolve relative paths
	cfg.StorageURL = resolveStorageURL(cfg.StorageURL, dir)
	if cfg.Log.File != "" && !filepath.IsAbs(cfg.Log.File) {
		cfg.Log.File = filepath.Join(dir, cfg.Log.File)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStorageURL); v != "" {
		c.StorageURL = v
	}
	if v := os.Getenv(EnvStorageKey); v != "" {
		c.StorageKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

func resolveStorageURL(url, dir string) string {
	path, ok := storage.Path(url)
	if !ok || path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return url
	}
	return storage.Scheme(url) + "://" + filepath.Join(dir, path)
}

func (c *Config) Validate() error {
	if c.StorageURL == "" {
		return fmt.Errorf("storage_url is required")
	}
	if !storage.Supported(c.StorageURL) {
		return fmt.Errorf("storage_url %q: %w", c.StorageURL, storage.ErrUnsupportedURL)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage_key is required")
	}
	if strings.ContainsAny(c.StorageKey, `/\`) {
		return fmt.Errorf("storage_key must not contain path separators")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Mode != "development" && c.Log.Mode != "production" {
		return fmt.Errorf("log.mode must be development or production")
	}
	if c.Upload.Delay < 0 {
		return fmt.Errorf("upload.delay must not be negative")
	}
	return nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
