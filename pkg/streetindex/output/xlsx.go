package output

import (
	"fmt"

	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names of an exported workbook.
const (
	ProcessedSheet   = "Processed"
	UnprocessedSheet = "Unprocessed"
)

// WriteWorkbook exports idx to an xlsx file at path.
func WriteWorkbook(idx *models.StreetIndex, path string) error {
	f, err := BuildWorkbook(idx)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

// BuildWorkbook lays out idx as a workbook with one sheet for processed
// and one for unprocessed roads. Each sheet carries a table over its data
// and a print area. The caller must close the returned file.
func BuildWorkbook(idx *models.StreetIndex) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      "Street index",
		Creator:    "streetindex",
		Identifier: idx.ID,
	}); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName(f.GetSheetName(0), ProcessedSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(UnprocessedSheet); err != nil {
		f.Close()
		return nil, err
	}

	processed := make([][]interface{}, len(idx.Processed))
	for i, r := range idx.Processed {
		processed[i] = []interface{}{r.Name, r.Position.String()}
	}
	if err := writeSheet(f, ProcessedSheet, "ProcessedRoads", []interface{}{"Street", "Reference"}, processed); err != nil {
		f.Close()
		return nil, err
	}

	maxCells := 0
	unprocessed := make([][]interface{}, len(idx.Unprocessed))
	for i, r := range idx.Unprocessed {
		row := []interface{}{r.Name}
		for _, p := range r.Positions {
			row = append(row, p.String())
		}
		unprocessed[i] = row
		maxCells = max(maxCells, len(r.Positions))
	}
	header := []interface{}{"Street"}
	for i := 1; i <= max(maxCells, 1); i++ {
		header = append(header, fmt.Sprintf("Cell %d", i))
	}
	if err := writeSheet(f, UnprocessedSheet, "UnprocessedRoads", header, unprocessed); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// writeSheet writes a header and rows, then adds a table and print area
// covering them.
func writeSheet(f *excelize.File, sheet, table string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	lastCol, lastRow := len(header), len(rows)+1

	// A table needs at least one data row.
	if len(rows) > 0 {
		ref, err := cellRange(1, 1, lastCol, lastRow, false)
		if err != nil {
			return err
		}
		if err := f.AddTable(sheet, &excelize.Table{
			Range:     ref,
			Name:      table,
			StyleName: "TableStyleLight9",
		}); err != nil {
			return err
		}
	}

	area, err := cellRange(1, 1, lastCol, lastRow, true)
	if err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("'%s'!%s", sheet, area),
		Scope:    sheet,
	})
}

// cellRange converts 1-based bounds to range notation such as "A1:D10",
// or "$A$1:$D$10" when abs is set.
func cellRange(c1, r1, c2, r2 int, abs bool) (string, error) {
	start, err := excelize.CoordinatesToCellName(c1, r1, abs)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(c2, r2, abs)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}
