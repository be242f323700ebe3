package tabular

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet written by WriteXLSX.
const SheetName = "Gradebook"

// ReadXLSX reads every row of the first sheet of a workbook, including blank
// rows after the last filled one.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open excel file: %w", ErrMalformed, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: excel file does not contain any sheets", ErrMalformed)
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d of sheet %s: %w", len(records)+1, sheetName, err)
		}
		records = append(records, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	return records, nil
}

// WriteXLSX writes records to a single-sheet workbook. Empty fields are left
// as blank cells; a record with no filled field keeps a text-formatted blank
// first cell so the row is still stored.
func WriteXLSX(w io.Writer, records [][]string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	blankStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}
	for i, rec := range records {
		if isBlank(rec) {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := f.SetCellStyle(SheetName, cell, cell, blankStyle); err != nil {
				return fmt.Errorf("failed to keep blank row %d: %w", i+1, err)
			}
			continue
		}
		for j, field := range rec {
			if field == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := f.SetCellStr(SheetName, cell, field); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write excel file: %w", err)
	}
	return nil
}
