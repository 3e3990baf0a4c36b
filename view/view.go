package view

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerlens-org/ledgerlens/dataset"
	"github.com/ledgerlens-org/ledgerlens/parse"
)

// ============================================================================
// QUERY VIEW — Stateless Filter/Sort/Paginate
// ============================================================================
// Apply runs one immutable Config through a fixed pipeline:
//
//   drop empty rows → free-text search → exact filters → substring
//   filters → date filter → sort → paginate
//
// The pipeline operates on index slices into the dataset; rows are not
// copied until the final page is cut, and the source dataset is never
// mutated. Applying the same Config to the same dataset twice yields
// identical results.
// ============================================================================

// SortDir is the sort direction of a Config.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// DateFilter restricts rows by a designated date column, either to one
// exact day or to an inclusive day range. Zero bounds are open.
type DateFilter struct {
	Column string     `json:"column"`
	Exact  *time.Time `json:"exact,omitempty"`
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
}

// Config is one immutable view over a dataset. The zero value filters
// nothing, sorts nothing, and returns all rows as a single page.
type Config struct {
	Search    string            `json:"search"`    // matches any column, case-insensitive
	Exact     map[string]string `json:"exact"`     // column -> required value
	Substring map[string]string `json:"substring"` // column -> required fragment
	Date      *DateFilter       `json:"date,omitempty"`

	SortKey string  `json:"sortKey"`
	SortDir SortDir `json:"sortDir"`

	Page     int `json:"page"`     // 1-based; <=0 means first page
	PageSize int `json:"pageSize"` // <=0 means no pagination
}

// Result is one page of a filtered dataset plus the full filtered count.
type Result struct {
	Rows       []dataset.Record `json:"rows"`
	TotalCount int              `json:"totalCount"`
}

// Apply runs the view pipeline over a dataset.
func Apply(ds *dataset.Dataset, cfg Config) Result {
	if ds == nil {
		return Result{Rows: []dataset.Record{}}
	}

	indices := make([]int, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		if rowHasData(row) {
			indices = append(indices, i)
		}
	}

	indices = filterSearch(ds, indices, cfg.Search)
	indices = filterExact(ds, indices, cfg.Exact)
	indices = filterSubstring(ds, indices, cfg.Substring)
	indices = filterDate(ds, indices, cfg.Date)
	sortIndices(ds, indices, cfg.SortKey, cfg.SortDir)

	total := len(indices)
	indices = paginate(indices, cfg.Page, cfg.PageSize)

	rows := make([]dataset.Record, len(indices))
	for i, idx := range indices {
		rows[i] = ds.Rows[idx]
	}
	return Result{Rows: rows, TotalCount: total}
}

func rowHasData(row dataset.Record) bool {
	for _, v := range row {
		if dataset.CellHasData(v) {
			return true
		}
	}
	return false
}

// ============================================================================
// FILTER STAGES
// ============================================================================

// filterSearch keeps rows where any column's stringified value contains
// the term, case-insensitive.
func filterSearch(ds *dataset.Dataset, indices []int, term string) []int {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return indices
	}
	return keep(indices, func(i int) bool {
		for _, col := range ds.Columns {
			v := strings.ToLower(dataset.Stringify(ds.Rows[i][col]))
			if strings.Contains(v, term) {
				return true
			}
		}
		return false
	})
}

// filterExact keeps rows whose stringified value equals the required
// value per column, case-insensitive. Filters are AND-combined.
func filterExact(ds *dataset.Dataset, indices []int, filters map[string]string) []int {
	if len(filters) == 0 {
		return indices
	}
	return keep(indices, func(i int) bool {
		for col, want := range filters {
			got := strings.TrimSpace(dataset.Stringify(ds.Rows[i][col]))
			if !strings.EqualFold(got, strings.TrimSpace(want)) {
				return false
			}
		}
		return true
	})
}

// filterSubstring keeps rows whose value contains the required fragment
// per column, case-insensitive. Filters are AND-combined.
func filterSubstring(ds *dataset.Dataset, indices []int, filters map[string]string) []int {
	if len(filters) == 0 {
		return indices
	}
	return keep(indices, func(i int) bool {
		for col, frag := range filters {
			frag = strings.ToLower(strings.TrimSpace(frag))
			if frag == "" {
				continue
			}
			got := strings.ToLower(dataset.Stringify(ds.Rows[i][col]))
			if !strings.Contains(got, frag) {
				return false
			}
		}
		return true
	})
}

// filterDate keeps rows whose date cell parses and falls on the exact
// day or inside the inclusive range. Comparison is at day granularity;
// rows with unparseable dates are dropped by an active date filter.
func filterDate(ds *dataset.Dataset, indices []int, f *DateFilter) []int {
	if f == nil || f.Column == "" {
		return indices
	}
	if f.Exact == nil && f.From == nil && f.To == nil {
		return indices
	}
	return keep(indices, func(i int) bool {
		t, ok := parse.Date(ds.Rows[i][f.Column])
		if !ok {
			return false
		}
		if f.Exact != nil {
			return t.Equal(day(*f.Exact))
		}
		if f.From != nil && t.Before(day(*f.From)) {
			return false
		}
		if f.To != nil && t.After(day(*f.To)) {
			return false
		}
		return true
	})
}

// day truncates a bound to UTC midnight so it compares against parsed
// cell dates at the same granularity.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func keep(indices []int, pred func(int) bool) []int {
	out := indices[:0:0]
	for _, i := range indices {
		if pred(i) {
			out = append(out, i)
		}
	}
	return out
}

// ============================================================================
// SORT AND PAGINATION
// ============================================================================

// sortIndices orders rows by the sort key. When both values parse as
// numbers the comparison is numeric, otherwise case-insensitive string.
// Nil cells sort last regardless of direction, and the sort is stable.
func sortIndices(ds *dataset.Dataset, indices []int, key string, dir SortDir) {
	if key == "" {
		return
	}
	desc := dir == SortDesc

	sort.SliceStable(indices, func(a, b int) bool {
		va, vb := ds.Rows[indices[a]][key], ds.Rows[indices[b]][key]

		// Nil is always last, in both directions.
		if va == nil || vb == nil {
			return va != nil && vb == nil
		}

		sa, sb := dataset.Stringify(va), dataset.Stringify(vb)
		na, aOK := toNumber(va)
		nb, bOK := toNumber(vb)

		var less bool
		if aOK && bOK {
			less = na < nb
		} else {
			less = strings.ToLower(sa) < strings.ToLower(sb)
		}
		if desc {
			return !less && !equalCell(sa, sb, na, nb, aOK && bOK)
		}
		return less
	})
}

func equalCell(sa, sb string, na, nb float64, numeric bool) bool {
	if numeric {
		return na == nb
	}
	return strings.EqualFold(sa, sb)
}

func toNumber(v dataset.Value) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// paginate cuts one 1-based page out of the filtered index slice. A
// non-positive page size disables pagination.
func paginate(indices []int, page, size int) []int {
	if size <= 0 {
		return indices
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(indices) {
		return []int{}
	}
	end := start + size
	if end > len(indices) {
		end = len(indices)
	}
	return indices[start:end]
}
