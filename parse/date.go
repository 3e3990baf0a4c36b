package parse

import (
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// DATE PARSING
// ============================================================================
// Dates arrive as ISO strings, slash- or dash-delimited triples in either
// month-first or day-first order, or occasionally full timestamps. Date
// normalizes all of them to a calendar day (UTC midnight). Time
// components are discarded; comparisons downstream operate on days.
// ============================================================================

// genericLayouts is the fallback for values the structured triple parser
// does not recognize.
var genericLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2006-01",
	"Jan-2006",
}

// Date converts a raw cell into a calendar date.
// Returns false when the value is absent or nothing parses.
//
// Three-part dates are disambiguated positionally: a first part above
// 1000 means year-month-day; a third part above 1000 means the year is
// last and the remaining two parts are ambiguous. Both the month-first
// and the day-first reading are constructed, and the chronologically
// earlier valid one wins. There is no locale signal in these exports, so
// this heuristic can misread a valid day-first date as month-first when
// both readings are calendrically valid.
func Date(raw any) (time.Time, bool) {
	var s string
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case string:
		s = strings.TrimSpace(v)
	case float64:
		// Numeric cells are never dates in these exports.
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := parseTriple(s); ok {
		return t, true
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t), true
		}
	}

	return time.Time{}, false
}

// parseTriple handles "a/b/c" and "a-b-c" shapes.
func parseTriple(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	// Two-digit years are promoted to 20xx, so "5/3/24" means 2024. The
	// first part only reads as a year when it cannot be a day (above 31);
	// the last part only when the first is not already a year.
	if nums[0] > 31 && nums[0] < 100 {
		nums[0] += 2000
	}
	if nums[0] <= 31 && nums[2] < 100 {
		nums[2] += 2000
	}

	// Year first: unambiguous YYYY-MM-DD.
	if nums[0] > 1000 {
		return makeDate(nums[0], nums[1], nums[2])
	}

	// Year last: month/day order is ambiguous. Build both readings and
	// keep the earlier valid one.
	if nums[2] > 1000 {
		monthFirst, okMF := makeDate(nums[2], nums[0], nums[1])
		dayFirst, okDF := makeDate(nums[2], nums[1], nums[0])

		switch {
		case okMF && okDF:
			if dayFirst.Before(monthFirst) {
				return dayFirst, true
			}
			return monthFirst, true
		case okMF:
			return monthFirst, true
		case okDF:
			return dayFirst, true
		}
	}

	return time.Time{}, false
}

// makeDate builds a UTC calendar date and rejects values that time.Date
// would silently normalize (day 31 in a 30-day month, month 13).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
