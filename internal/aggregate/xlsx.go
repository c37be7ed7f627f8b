package aggregate

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "results"

// WriteXLSX writes the table to a spreadsheet file with a single "results"
// sheet, mirroring the CSV layout
func WriteXLSX(table Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := writeRow(f, 1, table.Header()); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := writeRow(f, i+2, table.Values(row)); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	// SetSheetRow wants a slice of any
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}
