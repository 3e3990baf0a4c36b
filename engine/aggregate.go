package engine

import (
	"sort"
	"strings"

	"github.com/ledgerlens-org/ledgerlens/dataset"
	"github.com/ledgerlens-org/ledgerlens/parse"
)

// ============================================================================
// AGGREGATION ENGINE — Generic Group-By
// ============================================================================
// One primitive implements every "by vendor / by payment type / by
// shipping type / by month" grouping: callers differ only in the key and
// value selectors. Records whose key selector yields "" are skipped
// entirely (they still count toward dataset-wide totals computed
// elsewhere).
// ============================================================================

// KeyFunc extracts a bucket key from a record. Empty string means the
// record is unclassifiable for this dimension.
type KeyFunc func(dataset.Record) string

// ValueFunc extracts the numeric value a record contributes.
type ValueFunc func(dataset.Record) float64

// GroupBy aggregates records into buckets keyed by keyFn, accumulating
// count and valueFn totals per bucket. Buckets come back sorted
// descending by total; ties keep first-encounter order (the sort is
// stable, so results are deterministic).
func GroupBy(ds *dataset.Dataset, keyFn KeyFunc, valueFn ValueFunc) Breakdown {
	totals := make(map[string]*Bucket)
	order := make([]string, 0)

	if ds != nil {
		for _, row := range ds.Rows {
			key := keyFn(row)
			if key == "" {
				continue
			}
			bucket, ok := totals[key]
			if !ok {
				bucket = &Bucket{Key: key}
				totals[key] = bucket
				order = append(order, key)
			}
			bucket.Count++
			bucket.Total += valueFn(row)
		}
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		b := *totals[key]
		if b.Count > 0 {
			b.Average = b.Total / float64(b.Count)
		}
		buckets = append(buckets, b)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Total > buckets[j].Total
	})

	return summarize(buckets)
}

// summarize derives breakdown-wide totals from the buckets, keeping the
// Total/TotalQty invariants true by construction.
func summarize(buckets []Bucket) Breakdown {
	b := Breakdown{Buckets: buckets}
	for _, bucket := range buckets {
		b.Total += bucket.Total
		b.TotalQty += bucket.Count
	}
	return b
}

// ============================================================================
// SELECTORS
// ============================================================================

// ColumnKey keys records by a column's trimmed string value.
func ColumnKey(column string) KeyFunc {
	return func(row dataset.Record) string {
		if column == "" {
			return ""
		}
		return strings.TrimSpace(dataset.Stringify(row[column]))
	}
}

// MonthKey keys records by "YYYY-MM" derived from a date column.
// Records with unparseable dates yield "" and drop out of the breakdown.
func MonthKey(column string) KeyFunc {
	return func(row dataset.Record) string {
		if column == "" {
			return ""
		}
		t, ok := parse.Date(row[column])
		if !ok {
			return ""
		}
		return t.Format("2006-01")
	}
}

// AmountValue reads a record's monetary value from a column through the
// amount parser. An empty column name values every record at 0.
func AmountValue(column string) ValueFunc {
	return func(row dataset.Record) float64 {
		if column == "" {
			return 0
		}
		return parse.Amount(row[column])
	}
}

// CountValue values every record at 1, for quantity-only groupings.
func CountValue() ValueFunc {
	return func(dataset.Record) float64 { return 1 }
}
