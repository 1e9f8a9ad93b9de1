// Package output renders a street index for printing and export.
package output

import (
	"strings"

	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
)

// LineTerminator separates rendered records.
const LineTerminator = "\r\n"

// ProcessedRecord renders one processed road as "name<TAB>reference".
func ProcessedRecord(r models.ProcessedRoad) string {
	return r.Name + "\t" + r.Position.String()
}

// UnprocessedRecord renders one unprocessed road as the name followed by
// each of its cells, tab-separated.
func UnprocessedRecord(r models.UnprocessedRoad) string {
	fields := make([]string, 0, len(r.Positions)+1)
	fields = append(fields, r.Name)
	for _, p := range r.Positions {
		fields = append(fields, p.String())
	}
	return strings.Join(fields, "\t")
}

// ProcessedTSV renders processed roads, one record per line.
func ProcessedTSV(roads []models.ProcessedRoad) string {
	lines := make([]string, len(roads))
	for i, r := range roads {
		lines[i] = ProcessedRecord(r)
	}
	return strings.Join(lines, LineTerminator)
}

// UnprocessedTSV renders unprocessed roads, one record per line.
func UnprocessedTSV(roads []models.UnprocessedRoad) string {
	lines := make([]string, len(roads))
	for i, r := range roads {
		lines[i] = UnprocessedRecord(r)
	}
	return strings.Join(lines, LineTerminator)
}
