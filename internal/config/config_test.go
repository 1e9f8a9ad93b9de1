package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "streetindex.yaml", `
page:
  width: 420
  height: 297
grid:
  cell_width: 30
  cell_height: 25.5
coverage: full
input:
  source: shapes
  sheet: Page 1
output:
  format: json
  pretty: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 420.0, cfg.Page.Width)
	assert.Equal(t, 25.5, cfg.Grid.CellHeight)
	assert.Equal(t, "full", cfg.Coverage)
	assert.Equal(t, "shapes", cfg.Input.Source)
	assert.Equal(t, "Page 1", cfg.Input.Sheet)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "streetindex.toml", `
coverage = "corners"

[grid]
cell_width = 20.0
cell_height = 20.0

[output]
format = "xlsx"
path = "index.xlsx"

[server]
addr = ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Grid.CellWidth)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, "index.xlsx", cfg.Output.Path)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeFile(t, "bad.yaml", "grid: [1, 2"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = Load(writeFile(t, "bad.toml", "grid = ["))
	assert.ErrorContains(t, err, "failed to parse TOML")

	_, err = Load(writeFile(t, "config.ini", "a=b"))
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Grid: GridConfig{CellWidth: 15}}
	ApplyDefaults(cfg)

	assert.Equal(t, 200.0, cfg.Page.Width)
	assert.Equal(t, 15.0, cfg.Grid.CellWidth)
	assert.Equal(t, 20.0, cfg.Grid.CellHeight)
	assert.Equal(t, "corners", cfg.Coverage)
	assert.Equal(t, "cells", cfg.Input.Source)
	assert.Equal(t, "tsv", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError string
	}{
		{"negative cell", func(c *Config) { c.Grid.CellWidth = -1 }, "cell size must be positive"},
		{"negative page", func(c *Config) { c.Page.Height = -5 }, "page size must not be negative"},
		{"coverage", func(c *Config) { c.Coverage = "interior" }, "invalid coverage"},
		{"source", func(c *Config) { c.Input.Source = "pdf" }, "invalid input source"},
		{"format", func(c *Config) { c.Output.Format = "csv" }, "invalid output format"},
		{"xlsx without path", func(c *Config) { c.Output.Format = "xlsx" }, "requires an output path"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "invalid logging level"},
		{"valid", func(c *Config) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantError), "got %v", err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("STREETINDEX_CELL_WIDTH", "12.5")
	t.Setenv("STREETINDEX_COVERAGE", "full")
	t.Setenv("STREETINDEX_ADDR", ":7000")

	cfg := &Config{}
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, 12.5, cfg.Grid.CellWidth)
	assert.Equal(t, "full", cfg.Coverage)
	assert.Equal(t, ":7000", cfg.Server.Addr)

	t.Setenv("STREETINDEX_PAGE_WIDTH", "wide")
	assert.ErrorContains(t, ApplyEnv(cfg), "STREETINDEX_PAGE_WIDTH")
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "STREETINDEX_TEST_SHEET=Legend\n")
	t.Cleanup(func() { os.Unsetenv("STREETINDEX_TEST_SHEET") })

	require.NoError(t, LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "Legend", os.Getenv("STREETINDEX_TEST_SHEET"))
}
