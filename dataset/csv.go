package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================================
// CSV INGESTION
// ============================================================================
// Converts delimited text into a Dataset with dynamic typing: cells that
// parse as numbers become float64, everything else stays a string, blank
// cells become nil. Structurally empty rows are dropped on the way in;
// DropEmptyRows re-applies the rule for datasets built elsewhere.
// ============================================================================

// FromCSV parses CSV text into a Dataset. The first row is the header.
// Short rows are padded with nil; long rows are truncated to the header.
func FromCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = strings.TrimSpace(h)
	}

	var rows []Record
	for {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				rec[col] = typeCell(raw[i])
			} else {
				rec[col] = nil
			}
		}
		if rowHasData(rec) {
			rows = append(rows, rec)
		}
	}

	return &Dataset{Columns: columns, Rows: rows}, nil
}

// typeCell applies dynamic typing to one cell.
func typeCell(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return trimmed
}
