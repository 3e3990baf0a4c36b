package parse

import (
	"strconv"
	"strings"
	"unicode"
)

// ============================================================================
// AMOUNT PARSING
// ============================================================================
// Exports mix numeric cells with display strings like "Rs. 1,234.50" or
// "$ 2,000". Amount normalizes both shapes to a float64. Absence of a
// valid amount is 0, never an error: callers have no recovery path for a
// single bad cell (see package doc).
// ============================================================================

// currencyMarks are stripped before numeric parsing. Symbols cover the
// currencies seen in real exports; textual prefixes like "Rs." fall out
// through the non-numeric trim below.
var currencyMarks = strings.NewReplacer(
	"$", "",
	"₹", "",
	"€", "",
	"£", "",
	",", "",
)

// Amount converts a raw cell into a numeric amount.
// Numeric cells pass through unchanged. Strings are stripped of currency
// symbols, commas, and whitespace before parsing. Anything unparseable
// (empty, "-", text) yields 0.
func Amount(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		cleaned := stripSpace(currencyMarks.Replace(v))
		cleaned = leadingNumber(trimNonNumericPrefix(cleaned))
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// stripSpace removes every whitespace rune, so "1 234.56" reads as one
// number.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// trimNonNumericPrefix drops leading characters that cannot start a
// number, so "Rs. 1234.50" parses as 1234.50. A leading minus sign is
// kept only when it is immediately followed by a digit ("-" alone means
// an empty cell in these exports).
func trimNonNumericPrefix(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			return s[i:]
		}
		if c == '-' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			return s[i:]
		}
	}
	return s
}

// leadingNumber cuts the string at the end of its leading numeric run,
// so "100 USD" parses as 100 (matching parseFloat semantics from the
// exports these files come from).
func leadingNumber(s string) string {
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
		case c == '-' && end == 0:
		case c == '.' && !seenDot:
			seenDot = true
		default:
			return s[:end]
		}
		end++
	}
	return s
}
