package dataset

import (
	"strconv"
	"strings"
)

// ============================================================================
// DATASET MODEL
// ============================================================================
// A Dataset is an ordered sequence of Records sharing one header. The
// first row's keys fix the column set; missing cells are nil, never
// omitted. Records hold raw ingested values (string, float64, or nil);
// semantic interpretation happens in schema/, engine/, and view/.
// ============================================================================

// Value is a raw cell: string, float64, or nil. Ingestion applies
// dynamic typing, so "200" arrives as float64(200) while "A-1001" stays
// a string.
type Value = any

// Record maps column name to raw cell value. Treated as immutable once
// the dataset is built.
type Record map[string]Value

// Dataset is an ordered collection of records over a fixed header.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool { return d == nil || len(d.Rows) == 0 }

// New builds a dataset from a header and rows, padding every record to
// the full column set (missing values become nil).
func New(columns []string, rows []Record) *Dataset {
	padded := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(columns))
		for _, col := range columns {
			if v, ok := row[col]; ok {
				rec[col] = v
			} else {
				rec[col] = nil
			}
		}
		padded = append(padded, rec)
	}
	return &Dataset{Columns: columns, Rows: padded}
}

// ============================================================================
// INGESTION NORMALIZER
// ============================================================================

// DropEmptyRows returns a dataset without structurally empty rows. A row
// is empty when every cell is nil, an empty string, or a lone "-" after
// trimming. Upstream parsers may have filtered already; this re-applies
// the rule defensively so downstream totals never count placeholder
// rows.
func (d *Dataset) DropEmptyRows() *Dataset {
	if d == nil {
		return &Dataset{}
	}
	kept := make([]Record, 0, len(d.Rows))
	for _, row := range d.Rows {
		if rowHasData(row) {
			kept = append(kept, row)
		}
	}
	return &Dataset{Columns: d.Columns, Rows: kept}
}

func rowHasData(row Record) bool {
	for _, v := range row {
		if CellHasData(v) {
			return true
		}
	}
	return false
}

// CellHasData reports whether a raw cell carries a meaningful value.
func CellHasData(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		trimmed := strings.TrimSpace(val)
		return trimmed != "" && trimmed != "-"
	default:
		// Numbers, booleans, anything typed counts as data.
		return true
	}
}

// Stringify renders a raw cell for searching, filtering, and sorting.
// nil renders as the empty string.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatFloat(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// formatFloat renders whole numbers without decimals, matching how the
// values looked before dynamic typing.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
