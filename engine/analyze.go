package engine

import (
	"strings"

	"github.com/ledgerlens-org/ledgerlens/dataset"
	"github.com/ledgerlens-org/ledgerlens/parse"
	"github.com/ledgerlens-org/ledgerlens/schema"
)

// ============================================================================
// END-TO-END ANALYSIS
// ============================================================================
// Analyze runs every breakdown over a dataset in one pass-set and
// packages the result for the CLI and the HTTP layer. It never fails:
// undetected roles degrade per the rules documented on each classifier,
// and a zero-row dataset yields a zero-valued result.
// ============================================================================

// Result is the complete analysis of one dataset.
type Result struct {
	TotalRecords        int       `json:"totalRecords"`
	TotalSales          float64   `json:"totalSales"`
	PaidSales           float64   `json:"paidSales"`
	OutstandingPayments float64   `json:"outstandingPayments"`
	AverageSaleValue    float64   `json:"averageSaleValue"`
	DateRange           DateRange `json:"dateRange"`

	ByVendor       Breakdown `json:"byVendor"`
	ByPaymentType  Breakdown `json:"byPaymentType"`
	ByShippingType Breakdown `json:"byShippingType"`
	ByMonth        Breakdown `json:"byMonth"`
	ByOrderType    Breakdown `json:"byOrderType"`
	ByItemService  Breakdown `json:"byItemService"`
	ByCurrency     Breakdown `json:"byCurrency"`

	Roles schema.Roles `json:"roles"`
}

// Payment status keywords. Outstanding is checked first because
// "unpaid" contains "paid".
var (
	outstandingWords = []string{"pending", "outstanding", "unpaid", "due"}
	paidWords        = []string{"paid", "completed", "cleared"}
)

// Analyze computes the full analysis for a dataset under the given role
// mapping. Scalar monetary figures are rounded to 2 decimals at this
// edge; breakdown buckets keep full precision so their sum invariants
// hold exactly.
func Analyze(ds *dataset.Dataset, roles schema.Roles, opts ...Option) Result {
	cfg := applyOptions(opts)
	ds = ds.DropEmptyRows()
	if roles == nil {
		roles = schema.Roles{}
	}

	amountCol := amountColumn(roles)
	amount := AmountValue(amountCol)

	res := Result{
		TotalRecords: ds.Len(),
		Roles:        roles,
	}

	var totalSales, paid, outstanding float64
	paymentCol, hasPayment := roles.Column(schema.RolePaymentType)
	for _, row := range ds.Rows {
		v := amount(row)
		totalSales += v
		if !hasPayment {
			continue
		}
		status := strings.ToLower(dataset.Stringify(row[paymentCol]))
		switch {
		case containsAny(status, outstandingWords):
			outstanding += v
		case containsAny(status, paidWords):
			paid += v
		}
	}
	res.TotalSales = RoundTo2(totalSales)
	res.PaidSales = RoundTo2(paid)
	res.OutstandingPayments = RoundTo2(outstanding)
	if res.TotalRecords > 0 {
		res.AverageSaleValue = RoundTo2(totalSales / float64(res.TotalRecords))
	}
	res.DateRange = dateRange(ds, roles)

	vendorCol, _ := roles.Column(schema.RoleVendor)
	res.ByVendor = TopN(GroupBy(ds, ColumnKey(vendorCol), amount), cfg.TopVendors, cfg.OtherLabel)

	shippingCol, _ := roles.Column(schema.RoleShippingType)
	res.ByPaymentType = GroupBy(ds, ColumnKey(paymentCol), amount)
	res.ByShippingType = GroupBy(ds, ColumnKey(shippingCol), amount)

	dateCol, _ := roles.Column(schema.RoleDate)
	res.ByMonth = GroupBy(ds, MonthKey(dateCol), amount).SortedByKey()

	res.ByOrderType = OrderTypeBreakdown(ds, roles, cfg.OrderTypeFallback)
	res.ByItemService = ItemServiceBreakdown(ds, roles)
	res.ByCurrency = CurrencyBreakdown(ds, roles, cfg.DefaultCurrency)

	return res
}

// dateRange scans the detected date column for the earliest and latest
// parseable dates. An undetected role or a dataset with no parseable
// dates leaves both ends nil.
func dateRange(ds *dataset.Dataset, roles schema.Roles) DateRange {
	col, ok := roles.Column(schema.RoleDate)
	if !ok {
		return DateRange{}
	}

	var r DateRange
	for _, row := range ds.Rows {
		t, ok := parse.Date(row[col])
		if !ok {
			continue
		}
		if r.Start == nil || t.Before(*r.Start) {
			r.Start = &t
		}
		if r.End == nil || t.After(*r.End) {
			r.End = &t
		}
	}
	return r
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
