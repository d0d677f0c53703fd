package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes the flattened table: a header row ("t" plus the
// compartment-major column names), then one row per time point.
func (t *ReplicateTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"t"}, t.ColumnNames...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	row := make([]string, len(header))
	for i, tp := range t.Time {
		row[0] = strconv.FormatFloat(tp, 'g', -1, 64)
		for c, col := range t.Columns {
			row[c+1] = strconv.FormatInt(col[i], 10)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// SaveCSV writes the table to a file, creating or truncating it.
func (t *ReplicateTable) SaveCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := t.WriteCSV(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
