package engine

import (
	"math"
	"sort"
	"time"
)

// ============================================================================
// ENGINE TYPES
// ============================================================================
// A Breakdown is one complete group-by result: buckets keyed by a
// dimension value, each carrying count, total, and average, plus the
// breakdown-wide total and quantity.
//
// Invariants (covered by tests):
//   - Total equals the sum of every bucket's Total.
//   - TotalQty equals the sum of every bucket's Count and never exceeds
//     the dataset size (unclassified rows are excluded).
// ============================================================================

// Bucket is the aggregate for one key within a Breakdown.
type Bucket struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// Breakdown is a group-by result over one dimension. Buckets are sorted
// descending by total; ties keep first-encounter order.
type Breakdown struct {
	Buckets  []Bucket `json:"buckets"`
	Total    float64  `json:"total"`
	TotalQty int      `json:"totalQty"`
}

// Get returns the bucket for a key.
func (b Breakdown) Get(key string) (Bucket, bool) {
	for _, bucket := range b.Buckets {
		if bucket.Key == key {
			return bucket, true
		}
	}
	return Bucket{}, false
}

// Keys returns bucket keys in bucket order.
func (b Breakdown) Keys() []string {
	keys := make([]string, len(b.Buckets))
	for i, bucket := range b.Buckets {
		keys[i] = bucket.Key
	}
	return keys
}

// SortedByKey returns a copy with buckets in ascending key order.
// Month breakdowns use this for chronological trends: "2024-02" sorts
// before "2024-11" lexically because months are zero-padded.
func (b Breakdown) SortedByKey() Breakdown {
	buckets := make([]Bucket, len(b.Buckets))
	copy(buckets, b.Buckets)
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
	return Breakdown{Buckets: buckets, Total: b.Total, TotalQty: b.TotalQty}
}

// DateRange is the observed calendar span of a dataset's date column.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// RoundTo2 rounds to 2 decimal places. Monetary figures in results are
// rounded once, at the edge, never during accumulation.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
