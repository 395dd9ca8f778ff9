// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/catalog"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	CORSOrigin  string `json:"cors_origin,omitempty"`  // Allowed CORS origin

	// Rendering
	DefaultTemplate string `json:"default_template,omitempty"` // Template used when the data names none
	OutputDir       string `json:"output_dir,omitempty"`       // Where the render command writes files
	Uncompressed    bool   `json:"uncompressed,omitempty"`     // Write PDF content streams uncompressed

	// Thumbnails
	ThumbnailDir     string `json:"thumbnail_dir,omitempty"`     // Output directory for catalog thumbnails
	ThumbnailWidth   int    `json:"thumbnail_width,omitempty"`   // Thumbnail width in pixels
	ThumbnailQuality int    `json:"thumbnail_quality,omitempty"` // JPEG quality (1-100)
	ChromePath       string `json:"chrome_path,omitempty"`       // Chrome binary used for screenshots

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults are applied beneath config file values and CLI flags.
var Defaults = Config{
	Port:             8080,
	DefaultTemplate:  "basic",
	OutputDir:        "out",
	ThumbnailDir:     "thumbnails",
	ThumbnailWidth:   300,
	ThumbnailQuality: 75,
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
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

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.ThumbnailWidth < 0 {
		return fmt.Errorf("config error: 'thumbnail_width' must be non-negative")
	}
	if c.ThumbnailQuality < 0 || c.ThumbnailQuality > 100 {
		return fmt.Errorf("config error: 'thumbnail_quality' must be between 1 and 100")
	}

	if c.DefaultTemplate != "" {
		if _, err := catalog.Default().Get(c.DefaultTemplate); err != nil {
			return fmt.Errorf("config error: 'default_template': %w", err)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ThumbnailDir == "" {
		result.ThumbnailDir = defaults.ThumbnailDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ThumbnailWidth == 0 {
		result.ThumbnailWidth = defaults.ThumbnailWidth
	}
	if result.ThumbnailQuality == 0 {
		result.ThumbnailQuality = defaults.ThumbnailQuality
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides fields from the environment: DATABASE_URL, PORT,
// CORS_ORIGIN and CHROME_PATH.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		c.CORSOrigin = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	return nil
}
