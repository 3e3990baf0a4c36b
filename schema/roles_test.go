package schema

import (
	"testing"

	"github.com/ledgerlens-org/ledgerlens/dataset"
)

func detectFor(t *testing.T, columns []string, sample dataset.Record) Roles {
	t.Helper()
	rows := []dataset.Record{}
	if sample != nil {
		rows = append(rows, sample)
	}
	return Detect(dataset.New(columns, rows))
}

func assertRole(t *testing.T, roles Roles, role Role, want string) {
	t.Helper()
	got, ok := roles.Column(role)
	if want == "" {
		if ok {
			t.Errorf("role %s should be undetected, got %q", role, got)
		}
		return
	}
	if !ok || got != want {
		t.Errorf("role %s = %q (detected=%v), want %q", role, got, ok, want)
	}
}

func TestDetectTypicalPurchaseExport(t *testing.T) {
	roles := detectFor(t,
		[]string{"#_1", "Vendor Name", "Document Type", "Document Total", "Price Mode", "Date", "Payment Terms", "Shipping Type"},
		dataset.Record{
			"#_1": "1001300", "Vendor Name": "Acme", "Document Type": "Item",
			"Document Total": float64(1200), "Price Mode": "INR",
			"Date": "2024-03-05", "Payment Terms": "Net 30", "Shipping Type": "Air",
		},
	)

	assertRole(t, roles, RoleOrderCode, "#_1")
	assertRole(t, roles, RoleVendor, "Vendor Name")
	assertRole(t, roles, RoleItemServiceCategory, "Document Type")
	assertRole(t, roles, RoleAmount, "Document Total")
	assertRole(t, roles, RoleCurrency, "Price Mode")
	assertRole(t, roles, RoleDate, "Date")
	assertRole(t, roles, RolePaymentType, "Payment Terms")
	assertRole(t, roles, RoleShippingType, "Shipping Type")
}

func TestDetectExactBeatsSubstring(t *testing.T) {
	// "Total" appears in both headers; the exact candidate "document
	// total" wins over any substring hit in a later candidate.
	roles := detectFor(t,
		[]string{"Grand Total Remarks", "Document Total"},
		dataset.Record{"Grand Total Remarks": "x", "Document Total": float64(1)},
	)
	assertRole(t, roles, RoleAmount, "Document Total")
}

func TestDetectCandidatePriorityOverHeaderOrder(t *testing.T) {
	// "amount" outranks "value" even though the value column comes first.
	roles := detectFor(t,
		[]string{"Order Value", "Net Amount"},
		dataset.Record{"Order Value": float64(1), "Net Amount": float64(2)},
	)
	assertRole(t, roles, RoleAmount, "Net Amount")
}

func TestDetectAmountExclusions(t *testing.T) {
	// "Price Mode Total" contains both an amount fragment and an
	// excluded fragment; it must never be the amount column. Same for
	// currency and status columns.
	roles := detectFor(t,
		[]string{"Price Mode Total", "Currency", "Payment Status", "Gross Value"},
		dataset.Record{"Price Mode Total": "INR", "Currency": "INR", "Payment Status": "Paid", "Gross Value": float64(9)},
	)
	assertRole(t, roles, RoleAmount, "Gross Value")
}

func TestDetectAmountCurrencyExclusionIsExact(t *testing.T) {
	// Only a header that IS "currency" is barred from the amount role; a
	// header that merely mentions currency still qualifies.
	roles := detectFor(t,
		[]string{"Currency", "Currency Adjusted Total"},
		dataset.Record{"Currency": "INR", "Currency Adjusted Total": float64(42)},
	)
	assertRole(t, roles, RoleAmount, "Currency Adjusted Total")
}

func TestDetectAmountUndetected(t *testing.T) {
	roles := detectFor(t,
		[]string{"Currency", "Remarks"},
		dataset.Record{"Currency": "INR", "Remarks": "ok"},
	)
	assertRole(t, roles, RoleAmount, "")
}

func TestDetectTypeColumnRequiresSample(t *testing.T) {
	// A bare "Type" header only maps to the item/service role when its
	// values look like Item/Service.
	roles := detectFor(t,
		[]string{"Type", "Document Total"},
		dataset.Record{"Type": "Service", "Document Total": float64(1)},
	)
	assertRole(t, roles, RoleItemServiceCategory, "Type")

	roles = detectFor(t,
		[]string{"Type", "Document Total"},
		dataset.Record{"Type": "Wholesale", "Document Total": float64(1)},
	)
	assertRole(t, roles, RoleItemServiceCategory, "")
}

func TestDetectOrderCodeVariants(t *testing.T) {
	for _, col := range []string{"#_1", "Order Number", "order_no"} {
		roles := detectFor(t, []string{col}, dataset.Record{col: "1001300"})
		assertRole(t, roles, RoleOrderCode, col)
	}
}

func TestDetectGenericCodeDoesNotMatchOrderCodeColumn(t *testing.T) {
	// "Order Code" belongs to the orderCode role; the item/service
	// role's generic "code" candidate must not steal it via substring.
	roles := detectFor(t,
		[]string{"Order Code", "Vendor Name"},
		dataset.Record{"Order Code": "2001234", "Vendor Name": "Acme"},
	)
	assertRole(t, roles, RoleOrderCode, "Order Code")
	assertRole(t, roles, RoleItemServiceCategory, "")
}

func TestDetectRolesIndependently(t *testing.T) {
	// One column can be claimed by two roles; detection never excludes a
	// column because another role already took it.
	roles := detectFor(t,
		[]string{"Payment"},
		dataset.Record{"Payment": "Paid"},
	)
	assertRole(t, roles, RolePaymentType, "Payment")

	// A pathological header claims both amount and payment type.
	roles = detectFor(t,
		[]string{"Payment Total"},
		dataset.Record{"Payment Total": float64(10)},
	)
	assertRole(t, roles, RoleAmount, "Payment Total")
	assertRole(t, roles, RolePaymentType, "Payment Total")
}

func TestDetectEmptyDataset(t *testing.T) {
	roles := Detect(&dataset.Dataset{})
	if len(roles) != 0 {
		t.Errorf("no columns should mean no roles, got %v", roles)
	}
	roles = Detect(nil)
	if len(roles) != 0 {
		t.Errorf("nil dataset should mean no roles, got %v", roles)
	}
}

func TestDetectDeterministic(t *testing.T) {
	columns := []string{"Vendor", "Amount", "Date", "Currency"}
	sample := dataset.Record{"Vendor": "A", "Amount": float64(1), "Date": "2024-01-01", "Currency": "USD"}

	first := detectFor(t, columns, sample)
	for i := 0; i < 10; i++ {
		again := detectFor(t, columns, sample)
		for role, col := range first {
			if again[role] != col {
				t.Fatalf("run %d: role %s = %q, want %q", i, role, again[role], col)
			}
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: role count changed", i)
		}
	}
}
