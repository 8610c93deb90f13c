// Package export writes extracted comment rows to an Excel workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/pdf"
)

// DefaultSheetName is used when the caller does not name the worksheet.
const DefaultSheetName = "Comments"

// Headers is the fixed header row, in output column order.
var Headers = []string{"Page", "Drawing No.", "Comment", "Author", "Modified", "Color Name", "Color Hex"}

// WriteWorkbook writes one worksheet with a header row followed by one row
// per extracted comment, preserving row order.
func WriteWorkbook(path, sheet string, rows []pdf.ExtractedRow) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		values := []interface{}{
			row.Page,
			row.DrawingNumber,
			row.Comment,
			row.Author,
			row.Modified,
			row.ColorName,
			row.ColorHex,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}
