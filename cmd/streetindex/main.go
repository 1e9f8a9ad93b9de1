// Package main provides the CLI entry point for streetindex-go.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/streetindex-go/internal/config"
	applog "github.com/ukaji3/streetindex-go/internal/log"
	"github.com/ukaji3/streetindex-go/internal/server"
	"github.com/ukaji3/streetindex-go/pkg/streetindex"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/grid"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/output"
)

// flags holds command-line values. Only flags the user set override the
// config file and environment.
type flags struct {
	configPath      string
	outputPath      string
	unprocessedPath string
	format          string
	pretty          bool
	cellWidth       float64
	cellHeight      float64
	pageWidth       float64
	pageHeight      float64
	coverage        string
	sheet           string
	source          string
	logLevel        string
	logFile         string
	addr            string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	f := &flags{}
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "streetindex [labels-file]",
		Short: "Build a printed street index from map label positions",
		Long: `streetindex-go assigns street-name labels to the cells of a reference grid
and writes a street index (e.g. "Canterbury Road  B2-E2"). Labels are read
from CSV, TSV, JSON or xlsx files.`,
		Args: cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			*cfg = *loaded
			return applog.Init(cfg.Logging.Path, cfg.Logging.Level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(stdout, cfg, args[0])
		},
	}
	rootCmd.SetOut(stdout)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	pf.Float64Var(&f.cellWidth, "cell-width", 0, "Grid cell width in mm")
	pf.Float64Var(&f.cellHeight, "cell-height", 0, "Grid cell height in mm")
	pf.Float64Var(&f.pageWidth, "page-width", 0, "Page width in mm")
	pf.Float64Var(&f.pageHeight, "page-height", 0, "Page height in mm")
	pf.StringVar(&f.coverage, "coverage", "", "Cell coverage per label: corners, full")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&f.logFile, "log-file", "", "Log file path (default: stderr)")

	rootCmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&f.unprocessedPath, "unprocessed-output", "", "TSV file for streets needing manual review")
	rootCmd.Flags().StringVar(&f.format, "format", "", "Output format: tsv, json, xlsx")
	rootCmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&f.sheet, "sheet", "", "Sheet to read from xlsx input (default: first sheet)")
	rootCmd.Flags().StringVar(&f.source, "source", "", "Label source for xlsx input: cells, shapes")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve street index builds over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cfg)
			if err != nil {
				return err
			}
			slog.Info("starting server", "addr", cfg.Server.Addr)
			return server.NewServer(opts).SetupRouter().Run(cfg.Server.Addr)
		},
	}
	serveCmd.Flags().StringVar(&f.addr, "addr", "", "Listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

// loadConfig merges, in increasing priority: defaults, config file,
// .env and STREETINDEX_* variables, command-line flags.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg := &config.Config{}
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("cell-width") {
		cfg.Grid.CellWidth = f.cellWidth
	}
	if changed("cell-height") {
		cfg.Grid.CellHeight = f.cellHeight
	}
	if changed("page-width") {
		cfg.Page.Width = f.pageWidth
	}
	if changed("page-height") {
		cfg.Page.Height = f.pageHeight
	}
	if changed("coverage") {
		cfg.Coverage = f.coverage
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-file") {
		cfg.Logging.Path = f.logFile
	}
	if cmd.Flags().Lookup("output") != nil {
		if changed("output") {
			cfg.Output.Path = f.outputPath
		}
		if changed("unprocessed-output") {
			cfg.Output.UnprocessedPath = f.unprocessedPath
		}
		if changed("format") {
			cfg.Output.Format = f.format
		}
		if changed("pretty") {
			cfg.Output.Pretty = f.pretty
		}
		if changed("sheet") {
			cfg.Input.Sheet = f.sheet
		}
		if changed("source") {
			cfg.Input.Source = f.source
		}
	}
	if cmd.Flags().Lookup("addr") != nil && changed("addr") {
		cfg.Server.Addr = f.addr
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func buildOptions(cfg *config.Config) (streetindex.Options, error) {
	coverage, ok := grid.ParseCoverage(cfg.Coverage)
	if !ok {
		return streetindex.Options{}, fmt.Errorf("invalid coverage: %s", cfg.Coverage)
	}

	return streetindex.Options{
		Page: models.BoundingBox{
			Width:  models.Millimeter(cfg.Page.Width),
			Height: models.Millimeter(cfg.Page.Height),
		},
		Grid: models.GridConfig{
			CellWidth:  models.Millimeter(cfg.Grid.CellWidth),
			CellHeight: models.Millimeter(cfg.Grid.CellHeight),
		},
		Coverage: coverage,
		Sheet:    cfg.Input.Sheet,
		Source:   streetindex.Source(cfg.Input.Source),
	}, nil
}

func run(stdout io.Writer, cfg *config.Config, inputPath string) error {
	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	idx, err := streetindex.BuildFile(inputPath, opts)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	switch cfg.Output.Format {
	case "json":
		jsonData, err := output.ToJSON(idx, cfg.Output.Pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return writeOutput(stdout, cfg.Output.Path, string(jsonData))
	case "xlsx":
		if err := output.WriteWorkbook(idx, cfg.Output.Path); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		return nil
	default:
		return writeTSV(stdout, cfg.Output, idx)
	}
}

func writeTSV(stdout io.Writer, out config.OutputConfig, idx *models.StreetIndex) error {
	processed := output.ProcessedTSV(idx.Processed)
	unprocessed := output.UnprocessedTSV(idx.Unprocessed)

	if out.Path == "" {
		fmt.Fprintf(stdout, "processed:%s%s\n", output.LineTerminator, processed)
		fmt.Fprintf(stdout, "unprocessed:%s%s\n", output.LineTerminator, unprocessed)
		return nil
	}

	if err := writeOutput(stdout, out.Path, processed); err != nil {
		return err
	}
	if out.UnprocessedPath != "" {
		return writeOutput(stdout, out.UnprocessedPath, unprocessed)
	}
	if len(idx.Unprocessed) > 0 {
		slog.Warn("unprocessed streets not written; set --unprocessed-output", "count", len(idx.Unprocessed))
	}
	return nil
}

func writeOutput(stdout io.Writer, path, data string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, data)
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
