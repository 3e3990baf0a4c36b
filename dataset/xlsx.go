package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ============================================================================
// XLSX INGESTION
// ============================================================================
// Spreadsheet exports carry the same tabular shape as CSV. The first
// sheet's first row is the header; cells go through the same dynamic
// typing as CSV cells.
// ============================================================================

// FromXLSX parses a workbook into a Dataset using the first sheet.
func FromXLSX(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return fromSheet(f, sheets[0])
}

// FromXLSXSheet parses a named sheet into a Dataset.
func FromXLSXSheet(r io.Reader, sheet string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return fromSheet(f, sheet)
}

func fromSheet(f *excelize.File, sheet string) (*Dataset, error) {
	rawRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rawRows) == 0 {
		return nil, fmt.Errorf("sheet %q has no rows", sheet)
	}

	var columns []string
	for _, h := range rawRows[0] {
		columns = append(columns, trimHeader(h))
	}

	var rows []Record
	for _, raw := range rawRows[1:] {
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

func trimHeader(h string) string {
	// excelize preserves embedded newlines from merged header cells.
	h = strings.ReplaceAll(h, "\n", " ")
	return strings.TrimSpace(h)
}
