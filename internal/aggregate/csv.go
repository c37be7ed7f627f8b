package aggregate

import (
	"encoding/csv"
	"os"
)

// WriteCSV writes the table to path, header first
func WriteCSV(table Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Header()); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := w.Write(table.Values(row)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
