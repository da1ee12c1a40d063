// Package export renders in-memory tables as downloadable byte payloads.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Table is a header plus rows, ready for export.
type Table struct {
	Header []string
	Rows   [][]string
}

// CSV encodes the table as CSV bytes.
func CSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(t.Header) > 0 {
		if err := w.Write(t.Header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}
	for i, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
