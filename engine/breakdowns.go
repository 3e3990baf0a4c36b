package engine

import (
	"strings"

	"github.com/ledgerlens-org/ledgerlens/dataset"
	"github.com/ledgerlens-org/ledgerlens/schema"
)

// ============================================================================
// BREAKDOWN CLASSIFIERS
// ============================================================================
// Specialized aggregations built on GroupBy: order-type-by-code,
// item-vs-service, currency grouping, and top-N-with-remainder. Each one
// degrades along a documented fallback when its role is undetected; none
// of them can fail.
// ============================================================================

// Order type categories, keyed by the first character of the order code.
const (
	OrderTypeImport = "Import"
	OrderTypeLocal  = "Local"
	OrderTypeJob    = "Job"
)

// Item/service categories.
const (
	CategoryItem    = "Item"
	CategoryService = "Service"
)

// OrderTypeForCode maps an order code to its category by first
// character: '1' is Import, '2' is Local, '3' is Job. Anything else is
// unclassifiable and returns "".
func OrderTypeForCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	switch code[0] {
	case '1':
		return OrderTypeImport
	case '2':
		return OrderTypeLocal
	case '3':
		return OrderTypeJob
	default:
		return ""
	}
}

// OrderTypeBreakdown groups amounts by order type. Codes outside
// {1,2,3} are excluded from every bucket (they still count toward
// dataset-wide totals elsewhere).
//
// When the orderCode role is undetected, fallbackCode assigns the whole
// active row set to a single type. It carries an upstream filter
// decision ("the user already filtered to import orders"), without which
// the consumer would get an empty breakdown it cannot explain. An empty
// or unmappable fallback yields an empty breakdown.
func OrderTypeBreakdown(ds *dataset.Dataset, roles schema.Roles, fallbackCode string) Breakdown {
	amount := AmountValue(amountColumn(roles))

	codeCol, ok := roles.Column(schema.RoleOrderCode)
	if ok {
		key := ColumnKey(codeCol)
		return GroupBy(ds, func(row dataset.Record) string {
			return OrderTypeForCode(key(row))
		}, amount)
	}

	fallbackType := OrderTypeForCode(fallbackCode)
	if fallbackType == "" {
		return summarize([]Bucket{})
	}
	return GroupBy(ds, func(dataset.Record) string { return fallbackType }, amount)
}

// ItemServiceBreakdown splits amounts between Item and Service.
//
// Classification order: exact text match, then digit-first means Item,
// then an 's' prefix or a service/labour keyword means Service, then
// Item. Defaulting uncertain values to Item is deliberate; rows are
// never dropped here, so TotalQty equals the dataset size.
func ItemServiceBreakdown(ds *dataset.Dataset, roles schema.Roles) Breakdown {
	categoryCol, _ := roles.Column(schema.RoleItemServiceCategory)
	key := ColumnKey(categoryCol)

	return GroupBy(ds, func(row dataset.Record) string {
		return classifyItemService(key(row))
	}, AmountValue(amountColumn(roles)))
}

func classifyItemService(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))

	switch lower {
	case "item":
		return CategoryItem
	case "service":
		return CategoryService
	}

	if lower != "" && lower[0] >= '0' && lower[0] <= '9' {
		return CategoryItem
	}
	if lower != "" && lower[0] == 's' {
		return CategoryService
	}
	if strings.Contains(lower, "service") ||
		strings.Contains(lower, "labour") ||
		strings.Contains(lower, "labor") {
		return CategoryService
	}

	return CategoryItem
}

// CurrencyBreakdown groups amounts by currency code. A blank value in a
// detected currency column is "Unknown"; an undetected currency role
// puts every row under defaultCode instead (the column does not exist,
// so nothing is "unknown" about it).
func CurrencyBreakdown(ds *dataset.Dataset, roles schema.Roles, defaultCode string) Breakdown {
	amount := AmountValue(amountColumn(roles))

	currencyCol, ok := roles.Column(schema.RoleCurrency)
	if !ok {
		if defaultCode == "" {
			defaultCode = "INR"
		}
		return GroupBy(ds, func(dataset.Record) string { return defaultCode }, amount)
	}

	key := ColumnKey(currencyCol)
	return GroupBy(ds, func(row dataset.Record) string {
		if v := key(row); v != "" {
			return v
		}
		return "Unknown"
	}, amount)
}

// TopN keeps the n largest buckets by total and folds the rest into one
// synthetic remainder bucket. The remainder is summed from the actual
// folded buckets, so the returned breakdown's totals match the input
// exactly. Breakdowns with n or fewer buckets come back unchanged.
func TopN(b Breakdown, n int, remainderLabel string) Breakdown {
	if n <= 0 || len(b.Buckets) <= n {
		return b
	}
	if remainderLabel == "" {
		remainderLabel = "Other"
	}

	top := make([]Bucket, n)
	copy(top, b.Buckets[:n]) // buckets are already sorted descending

	other := Bucket{Key: remainderLabel}
	for _, bucket := range b.Buckets[n:] {
		other.Count += bucket.Count
		other.Total += bucket.Total
	}
	if other.Count > 0 {
		other.Average = other.Total / float64(other.Count)
	}

	return summarize(append(top, other))
}

// amountColumn resolves the amount role, or "" when undetected (every
// record then values at 0, keeping counts meaningful).
func amountColumn(roles schema.Roles) string {
	col, _ := roles.Column(schema.RoleAmount)
	return col
}
