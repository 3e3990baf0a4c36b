// Package ledgerlens provides an in-memory analytical engine for
// loosely-structured sales and purchase exports.
//
// Usage:
//
//	import (
//	    "github.com/ledgerlens-org/ledgerlens/dataset"
//	    "github.com/ledgerlens-org/ledgerlens/engine"
//	    "github.com/ledgerlens-org/ledgerlens/schema"
//	)
//
//	ds, _ := dataset.FromCSV(raw)
//	roles := schema.Detect(ds)
//	result := engine.Analyze(ds, roles,
//	    engine.WithTopVendors(10),
//	    engine.WithDefaultCurrency("INR"),
//	)
//
// The engine maps heterogeneous column headers onto semantic roles
// (vendor, amount, date, payment type, ...), normalizes cell values, and
// produces group-by breakdowns with count/total/average per bucket. The
// view package filters, sorts, and paginates the same rows for tabular
// display.
//
// Nothing is persisted: every dataset lives for a single analysis call.
// The engine never returns errors for malformed data: unparseable
// amounts degrade to 0, unparseable dates drop out of date-keyed
// breakdowns, and undetected columns fall back to documented defaults.
package ledgerlens
