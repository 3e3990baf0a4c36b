package schema

import (
	"strings"

	"github.com/ledgerlens-org/ledgerlens/dataset"
)

// ============================================================================
// SCHEMA INFERENCE — Heuristic Role Detection
// ============================================================================
// Maps a dataset's column headers onto semantic roles (vendor, amount,
// date, ...) by name matching. Each role carries a priority-ordered list
// of candidate name fragments. Matching runs in two passes:
//
//   1. Exact: case-insensitive equality (also with spaces/underscores
//      squashed, so "Document Total" == "documenttotal").
//   2. Substring: squashed header contains squashed candidate.
//
// Within a pass, candidates are tried in priority order and headers in
// header order; the first hit wins. Roles are detected independently, so
// one column can in principle serve two roles (the name spaces should
// not collide in practice).
//
// Detection is deterministic given the same header and first-row sample.
// ============================================================================

// Role is a semantic label assigned to at most one raw column.
type Role string

const (
	RoleVendor              Role = "vendor"
	RoleAmount              Role = "amount"
	RoleDate                Role = "date"
	RolePaymentType         Role = "paymentType"
	RoleShippingType        Role = "shippingType"
	RoleOrderCode           Role = "orderCode"
	RoleItemServiceCategory Role = "itemServiceCategory"
	RoleCurrency            Role = "currency"
)

// AllRoles lists every detectable role in a stable order.
var AllRoles = []Role{
	RoleVendor,
	RoleAmount,
	RoleDate,
	RolePaymentType,
	RoleShippingType,
	RoleOrderCode,
	RoleItemServiceCategory,
	RoleCurrency,
}

// Roles maps each role to its detected column name. Undetected roles are
// absent from the map.
type Roles map[Role]string

// Column returns the detected column for a role.
func (r Roles) Column(role Role) (string, bool) {
	col, ok := r[role]
	return col, ok && col != ""
}

// Has reports whether a role was detected.
func (r Roles) Has(role Role) bool {
	_, ok := r.Column(role)
	return ok
}

// ============================================================================
// ROLE CANDIDATE TABLES
// ============================================================================
// Declarative configuration: new roles or synonyms are additive edits
// here, not new conditionals in the matcher.
// ============================================================================

// sampleGate optionally vetoes a candidate match based on the column's
// first-row sample value.
type sampleGate func(sample dataset.Value) bool

type roleSpec struct {
	role         Role
	candidates   []string              // priority-ordered, lowercase
	exclude      []string              // squashed fragments that disqualify a header
	excludeExact []string              // squashed names that disqualify only on equality
	exactOnly    []string              // candidates too generic for the substring pass
	gates        map[string]sampleGate // candidate -> extra condition
}

func (s roleSpec) isExactOnly(candidate string) bool {
	for _, c := range s.exactOnly {
		if c == candidate {
			return true
		}
	}
	return false
}

var roleSpecs = []roleSpec{
	{
		role: RoleVendor,
		candidates: []string{
			"vendor name", "vendor", "supplier name", "supplier", "company",
		},
	},
	{
		role: RoleAmount,
		candidates: []string{
			"document total", "doc total", "amount", "total", "value",
			"sales", "revenue", "net", "gross", "price", "sum", "amt",
		},
		// Columns about how a price is denominated, not how much it is.
		// A bare "Currency" header is never the amount, but a name that
		// merely mentions currency ("Currency Adjusted Total") can be.
		exclude:      []string{"pricemode", "paymentterms", "status"},
		excludeExact: []string{"currency"},
	},
	{
		role: RoleDate,
		candidates: []string{
			"date", "sale date", "transaction date", "order date", "invoice date",
		},
	},
	{
		role: RolePaymentType,
		candidates: []string{
			"payment type", "payment method", "payment terms", "payment status", "payment",
		},
	},
	{
		role: RoleShippingType,
		candidates: []string{
			"shipping type", "shipping method", "delivery", "shipping", "dispatch",
		},
	},
	{
		role: RoleOrderCode,
		candidates: []string{
			"#_1", "order number", "order no", "order code",
		},
	},
	{
		role: RoleItemServiceCategory,
		candidates: []string{
			"document type", "item code", "item", "sku", "product code",
			"product", "code", "type",
		},
		// "code" alone would swallow "Order Code" or "Credit Code" in
		// the substring pass; the generic names must match exactly.
		exactOnly: []string{"item", "product", "code", "type"},
		gates: map[string]sampleGate{
			// A bare "type" header is only the item/service column when
			// its values actually say so.
			"type": func(sample dataset.Value) bool {
				s := strings.ToLower(dataset.Stringify(sample))
				return strings.Contains(s, "item") || strings.Contains(s, "service")
			},
		},
	},
	{
		role: RoleCurrency,
		candidates: []string{
			"price mode", "currency",
		},
	},
}

// ============================================================================
// DETECTION
// ============================================================================

// Detect computes the role mapping for a dataset from its header and
// first-row sample. Missing roles are simply absent; callers fall back
// per their own rules (see engine breakdown classifiers).
func Detect(ds *dataset.Dataset) Roles {
	roles := make(Roles, len(roleSpecs))
	if ds == nil || len(ds.Columns) == 0 {
		return roles
	}

	var sample dataset.Record
	if len(ds.Rows) > 0 {
		sample = ds.Rows[0]
	}

	for _, spec := range roleSpecs {
		if col, ok := detectRole(spec, ds.Columns, sample); ok {
			roles[spec.role] = col
		}
	}
	return roles
}

func detectRole(spec roleSpec, columns []string, sample dataset.Record) (string, bool) {
	// Pass 1: exact (case-insensitive, also squashed).
	for _, cand := range spec.candidates {
		squashedCand := squash(cand)
		for _, col := range columns {
			if isExcluded(col, spec) {
				continue
			}
			lower := strings.ToLower(strings.TrimSpace(col))
			if lower != cand && squash(col) != squashedCand {
				continue
			}
			if passesGate(spec, cand, col, sample) {
				return col, true
			}
		}
	}

	// Pass 2: substring, same priority order.
	for _, cand := range spec.candidates {
		if spec.isExactOnly(cand) {
			continue
		}
		squashedCand := squash(cand)
		for _, col := range columns {
			if isExcluded(col, spec) {
				continue
			}
			if !strings.Contains(squash(col), squashedCand) {
				continue
			}
			if passesGate(spec, cand, col, sample) {
				return col, true
			}
		}
	}

	return "", false
}

func passesGate(spec roleSpec, candidate, column string, sample dataset.Record) bool {
	gate, ok := spec.gates[candidate]
	if !ok {
		return true
	}
	if sample == nil {
		return false
	}
	return gate(sample[column])
}

func isExcluded(column string, spec roleSpec) bool {
	squashed := squash(column)
	for _, frag := range spec.exclude {
		if strings.Contains(squashed, frag) {
			return true
		}
	}
	for _, name := range spec.excludeExact {
		if squashed == name {
			return true
		}
	}
	return false
}

// squash lowercases and removes spaces and underscores, so
// "Document_Total", "document total", and "DocumentTotal" compare equal.
func squash(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
