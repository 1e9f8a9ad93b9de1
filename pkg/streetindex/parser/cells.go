package parser

import (
	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
	"github.com/xuri/excelize/v2"
)

// ExtractLabelCells reads label rectangles from the rows of a sheet.
// The first non-empty row is the header, laid out as for ReadDelimited.
func ExtractLabelCells(f *excelize.File, sheetName string) ([]models.LabelRect, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return decodeRecords(rows)
}

// FirstSheet returns the name of the first sheet in the workbook.
func FirstSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	return sheets[0]
}
