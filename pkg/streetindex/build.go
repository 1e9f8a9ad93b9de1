package streetindex

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/grid"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/index"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/parser"
	"github.com/xuri/excelize/v2"
)

// Build assigns labels to grid cells and classifies the streets.
func Build(labels []models.LabelRect, opts Options) (*models.StreetIndex, error) {
	g, err := grid.New(opts.Page, opts.Grid, grid.WithCoverage(opts.Coverage))
	if err != nil {
		return nil, err
	}

	if err := g.InsertAll(labels); err != nil {
		return nil, err
	}
	entries := g.Drain()
	slog.Debug("labels assigned", "labels", len(labels), "entries", len(entries), "coverage", opts.Coverage)

	roads := index.Deduplicate(entries)
	processed, unprocessed := index.Classify(roads)

	idx := &models.StreetIndex{
		ID:          uuid.NewString(),
		Columns:     g.Columns(),
		Rows:        g.Rows(),
		Processed:   processed,
		Unprocessed: unprocessed,
	}

	if len(unprocessed) > 0 {
		slog.Warn("streets need manual review", "id", idx.ID, "count", len(unprocessed))
	}
	slog.Info("street index built", "id", idx.ID, "streets", roads.Len(), "processed", len(processed))

	return idx, nil
}

// BuildFile reads labels from path and builds the index. The format is
// chosen by extension: .csv, .tsv/.txt, .json or .xlsx.
func BuildFile(path string, opts Options) (*models.StreetIndex, error) {
	labels, err := ReadLabels(path, opts)
	if err != nil {
		return nil, err
	}
	return Build(labels, opts)
}

// ReadLabels reads label rectangles from path.
func ReadLabels(path string, opts Options) ([]models.LabelRect, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readFile(path, "csv", func(f *os.File) ([]models.LabelRect, error) {
			return parser.ReadDelimited(f, ',')
		})
	case ".tsv", ".txt":
		return readFile(path, "tsv", func(f *os.File) ([]models.LabelRect, error) {
			return parser.ReadDelimited(f, '\t')
		})
	case ".json":
		return readFile(path, "json", func(f *os.File) ([]models.LabelRect, error) {
			return parser.ReadJSON(f)
		})
	case ".xlsx", ".xlsm":
		if opts.Source == SourceShapes {
			return readShapes(path, opts.Sheet)
		}
		return readCells(path, opts.Sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func readFile(path, format string, read func(*os.File) ([]models.LabelRect, error)) ([]models.LabelRect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewImportError(path, format, err)
	}
	defer f.Close()

	labels, err := read(f)
	if err != nil {
		return nil, NewImportError(path, format, err)
	}
	return labels, nil
}

func readCells(path, sheet string) ([]models.LabelRect, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewImportError(path, "xlsx-cells", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = parser.FirstSheet(f)
	}
	labels, err := parser.ExtractLabelCells(f, sheet)
	if err != nil {
		return nil, NewImportError(path, "xlsx-cells", fmt.Errorf("sheet %q: %w", sheet, err))
	}
	return labels, nil
}

func readShapes(path, sheet string) ([]models.LabelRect, error) {
	bySheet, err := parser.ExtractLabelShapes(path)
	if err != nil {
		return nil, NewImportError(path, "xlsx-shapes", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewImportError(path, "xlsx-shapes", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet != "" {
		if !slices.Contains(sheets, sheet) {
			return nil, NewImportError(path, "xlsx-shapes", excelize.ErrSheetNotExist{SheetName: sheet})
		}
		return bySheet[sheet], nil
	}

	// Without a sheet name, labels of every sheet are combined in sheet order.
	var labels []models.LabelRect
	for _, name := range sheets {
		labels = append(labels, bySheet[name]...)
	}
	return labels, nil
}
