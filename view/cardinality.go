package view

import (
	"strings"

	"github.com/ledgerlens-org/ledgerlens/dataset"
)

// ============================================================================
// FILTER MODE SELECTION
// ============================================================================
// Low-cardinality columns render as exact-match dropdowns; everything
// else gets a substring text filter. A column qualifies for substring
// filtering when it has more than DefaultDistinctThreshold distinct
// values or its name matches a known high-cardinality fragment.
// ============================================================================

// DefaultDistinctThreshold is the distinct-value count above which a
// column switches from exact to substring filtering.
const DefaultDistinctThreshold = 15

// defaultHighCardinality lists name fragments of columns that are
// free-text by nature regardless of observed cardinality.
var defaultHighCardinality = []string{
	"vendor", "customer", "supplier", "description", "remarks", "name",
}

// SubstringFilterable reports whether a column should take a substring
// filter instead of an exact one. A non-positive threshold falls back
// to DefaultDistinctThreshold; a nil name list falls back to the
// built-in one.
func SubstringFilterable(ds *dataset.Dataset, column string, threshold int, highCardinality []string) bool {
	if threshold <= 0 {
		threshold = DefaultDistinctThreshold
	}
	if highCardinality == nil {
		highCardinality = defaultHighCardinality
	}

	lower := strings.ToLower(column)
	for _, frag := range highCardinality {
		if strings.Contains(lower, frag) {
			return true
		}
	}

	if ds == nil {
		return false
	}
	distinct := make(map[string]struct{})
	for _, row := range ds.Rows {
		v := strings.TrimSpace(dataset.Stringify(row[column]))
		if v == "" {
			continue
		}
		distinct[v] = struct{}{}
		if len(distinct) > threshold {
			return true
		}
	}
	return false
}
