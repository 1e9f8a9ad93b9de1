// Package config loads street index settings from YAML or TOML files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "STREETINDEX_"

// Config represents the top-level configuration structure parsed from
// streetindex.yaml or streetindex.toml.
type Config struct {
	// Page is the printed page extent.
	Page PageConfig `yaml:"page" toml:"page"`
	// Grid contains the reference grid cell dimensions.
	Grid GridConfig `yaml:"grid" toml:"grid"`
	// Coverage is "corners" or "full".
	Coverage string `yaml:"coverage" toml:"coverage"`
	// Input configures label import.
	Input InputConfig `yaml:"input" toml:"input"`
	// Output configures index export.
	Output OutputConfig `yaml:"output" toml:"output"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	// Server contains configuration for the HTTP server.
	Server ServerConfig `yaml:"server" toml:"server"`
}

// PageConfig holds the page size in millimetres.
type PageConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// GridConfig holds the cell size in millimetres.
type GridConfig struct {
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
}

// InputConfig configures label import.
type InputConfig struct {
	// Sheet is the xlsx sheet to read (empty: first sheet).
	Sheet string `yaml:"sheet" toml:"sheet"`
	// Source is "cells" or "shapes" for xlsx input.
	Source string `yaml:"source" toml:"source"`
}

// OutputConfig configures index export.
type OutputConfig struct {
	// Format is "tsv", "json" or "xlsx".
	Format string `yaml:"format" toml:"format"`
	// Path is the output file (empty: stdout).
	Path string `yaml:"path" toml:"path"`
	// UnprocessedPath receives unprocessed roads for tsv output.
	UnprocessedPath string `yaml:"unprocessed_path" toml:"unprocessed_path"`
	// Pretty enables indented JSON.
	Pretty bool `yaml:"pretty" toml:"pretty"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level" toml:"level"`
	// Path is the log file path.
	Path string `yaml:"path" toml:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string `yaml:"addr" toml:"addr"`
}

// Load reads a configuration file. The format is chosen by extension:
// .yaml/.yml or .toml. Defaults are not applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s (allowed: .yaml, .yml, .toml)", ext)
	}

	return &cfg, nil
}

// LoadEnv loads .env files into the process environment. Missing files
// are ignored; with no arguments ".env" is tried.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides config fields from STREETINDEX_* environment variables.
func ApplyEnv(config *Config) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"PAGE_WIDTH", &config.Page.Width},
		{"PAGE_HEIGHT", &config.Page.Height},
		{"CELL_WIDTH", &config.Grid.CellWidth},
		{"CELL_HEIGHT", &config.Grid.CellHeight},
	}
	for _, f := range floats {
		if v, ok := os.LookupEnv(EnvPrefix + f.key); ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, f.key, err)
			}
			*f.dst = parsed
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"COVERAGE", &config.Coverage},
		{"SHEET", &config.Input.Sheet},
		{"SOURCE", &config.Input.Source},
		{"FORMAT", &config.Output.Format},
		{"OUTPUT", &config.Output.Path},
		{"LOG_LEVEL", &config.Logging.Level},
		{"LOG_PATH", &config.Logging.Path},
		{"ADDR", &config.Server.Addr},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + s.key); ok {
			*s.dst = v
		}
	}

	return nil
}

// ApplyDefaults fills unset fields with default values.
func ApplyDefaults(config *Config) {
	if config.Page.Width == 0 {
		config.Page.Width = 200
	}
	if config.Page.Height == 0 {
		config.Page.Height = 200
	}
	if config.Grid.CellWidth == 0 {
		config.Grid.CellWidth = 20
	}
	if config.Grid.CellHeight == 0 {
		config.Grid.CellHeight = 20
	}
	if config.Coverage == "" {
		config.Coverage = "corners"
	}
	if config.Input.Source == "" {
		config.Input.Source = "cells"
	}
	if config.Output.Format == "" {
		config.Output.Format = "tsv"
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
}

// Validate checks the configuration for invalid values.
func Validate(config *Config) error {
	if config.Grid.CellWidth <= 0 || config.Grid.CellHeight <= 0 {
		return fmt.Errorf("grid cell size must be positive, got %vx%v", config.Grid.CellWidth, config.Grid.CellHeight)
	}
	if config.Page.Width < 0 || config.Page.Height < 0 {
		return fmt.Errorf("page size must not be negative, got %vx%v", config.Page.Width, config.Page.Height)
	}

	switch config.Coverage {
	case "corners", "full":
	default:
		return fmt.Errorf("invalid coverage: %s (allowed: corners, full)", config.Coverage)
	}

	switch config.Input.Source {
	case "cells", "shapes":
	default:
		return fmt.Errorf("invalid input source: %s (allowed: cells, shapes)", config.Input.Source)
	}

	switch config.Output.Format {
	case "tsv", "json", "xlsx":
	default:
		return fmt.Errorf("invalid output format: %s (allowed: tsv, json, xlsx)", config.Output.Format)
	}
	if config.Output.Format == "xlsx" && config.Output.Path == "" {
		return fmt.Errorf("xlsx output requires an output path")
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
	}

	return nil
}
