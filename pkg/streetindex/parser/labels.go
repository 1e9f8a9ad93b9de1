package parser

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMissingColumn indicates a header row lacking a required column.
var ErrMissingColumn = errors.New("missing column")

// headerAliases maps accepted header spellings to canonical field names.
var headerAliases = map[string]string{
	"name":        "name",
	"street":      "name",
	"street_name": "name",
	"x":           "x",
	"x_from_left": "x",
	"left":        "x",
	"y":           "y",
	"y_from_top":  "y",
	"top":         "y",
	"width":       "width",
	"w":           "width",
	"height":      "height",
	"h":           "height",
}

var requiredFields = []string{"name", "x", "y", "width", "height"}

// ReadDelimited reads label rectangles from CSV or TSV data. The first
// record is a header naming the columns (name, x, y, width, height) in any
// order. A UTF-8 or UTF-16 byte order mark selects the input encoding;
// without one the input is read as UTF-8.
func ReadDelimited(r io.Reader, comma rune) ([]models.LabelRect, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return decodeRecords(records)
}

// ReadJSON reads a JSON array of label rectangles.
func ReadJSON(r io.Reader) ([]models.LabelRect, error) {
	var labels []models.LabelRect
	if err := json.NewDecoder(r).Decode(&labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// decodeRecords converts a header row plus data rows into label rectangles.
// Blank rows are skipped; row numbers in errors are 1-based.
func decodeRecords(records [][]string) ([]models.LabelRect, error) {
	headerIdx := -1
	for i, rec := range records {
		if !isBlank(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil
	}

	columns, err := mapHeader(records[headerIdx])
	if err != nil {
		return nil, err
	}

	var labels []models.LabelRect
	for i := headerIdx + 1; i < len(records); i++ {
		rec := records[i]
		if isBlank(rec) {
			continue
		}
		label, err := decodeRecord(rec, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		labels = append(labels, label)
	}

	return labels, nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if field, ok := headerAliases[key]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, field)
		}
	}
	return columns, nil
}

func decodeRecord(rec []string, columns map[string]int) (models.LabelRect, error) {
	field := func(name string) string {
		if i := columns[name]; i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	label := models.LabelRect{StreetName: field("name")}
	if label.StreetName == "" {
		return label, errors.New("empty street name")
	}

	targets := []struct {
		name string
		dst  *models.Millimeter
	}{
		{"x", &label.XFromLeft},
		{"y", &label.YFromTop},
		{"width", &label.Width},
		{"height", &label.Height},
	}
	for _, t := range targets {
		v, err := parseLength(field(t.name))
		if err != nil {
			return label, fmt.Errorf("%s: %w", t.name, err)
		}
		*t.dst = v
	}

	return label, nil
}

// parseLength parses a millimetre value, tolerating a trailing "mm" unit
// and a decimal comma.
func parseLength(s string) (models.Millimeter, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "mm"))
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return models.Millimeter(f), nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
