package parse

import (
	"testing"
	"time"
)

// ============================================================================
// AMOUNT TESTS
// ============================================================================

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"numeric passthrough", 1234.5, 1234.5},
		{"int passthrough", 200, 200},
		{"nil", nil, 0},
		{"plain string", "200", 200},
		{"decimal string", "50.5", 50.5},
		{"dollar sign", "$100", 100},
		{"rupee sign", "₹2,500", 2500},
		{"euro with inner spaces", " € 1 234.56 ", 1234.56},
		{"comma separators", "1,234.50", 1234.5},
		{"rupee prefix text", "Rs. 1,234.50", 1234.5},
		{"trailing unit", "100 USD", 100},
		{"negative", "-42.5", -42.5},
		{"dash placeholder", "-", 0},
		{"empty string", "", 0},
		{"text", "pending", 0},
		{"bool cell", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Amount(tt.in); got != tt.want {
				t.Errorf("Amount(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmountIdempotentOnNumbers(t *testing.T) {
	for _, v := range []float64{0, 1, -3.25, 99999.99} {
		if got := Amount(v); got != v {
			t.Errorf("Amount(%v) = %v, want unchanged", v, got)
		}
	}
}

// ============================================================================
// DATE TESTS
// ============================================================================

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Time
		ok   bool
	}{
		{"ISO", "2024-03-05", day(2024, time.March, 5), true},
		{"ISO slashes", "2024/03/05", day(2024, time.March, 5), true},
		{"day first unambiguous", "13/02/2024", day(2024, time.February, 13), true},
		{"dash delimited day first", "13-02-2024", day(2024, time.February, 13), true},
		{"ambiguous picks earlier", "03/05/2024", day(2024, time.March, 5), true},
		{"invalid month first reading", "31/01/2024", day(2024, time.January, 31), true},
		{"two digit year", "5/3/24", day(2024, time.March, 5), true},
		{"two digit year day first", "13/2/24", day(2024, time.February, 13), true},
		{"two digit year first", "99/03/05", day(2099, time.March, 5), true},
		{"timestamp", "2024-03-05 14:30:00", day(2024, time.March, 5), true},
		{"textual", "Jan 2, 2024", day(2024, time.January, 2), true},
		{"day 31 in 30 day month", "31/06/2024", time.Time{}, false},
		{"garbage", "invalid", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"nil", nil, time.Time{}, false},
		{"numeric cell", 44927.0, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.in)
			if ok != tt.ok {
				t.Fatalf("Date(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Date(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// The earlier-of-two heuristic: "05/03/2024" could be May 3 or March 5.
// March 5 is earlier, so the day-first reading wins here even though the
// value may have meant May 3. The behavior is intentional and pinned.
func TestDateAmbiguityPrefersEarlier(t *testing.T) {
	got, ok := Date("05/03/2024")
	if !ok {
		t.Fatal("expected a parse")
	}
	if want := day(2024, time.March, 5); !got.Equal(want) {
		t.Errorf("Date(05/03/2024) = %v, want %v", got, want)
	}
}

func TestDateDiscardsTime(t *testing.T) {
	got, ok := Date("2024-03-05T18:45:00Z")
	if !ok {
		t.Fatal("expected a parse")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("time component should be discarded, got %v", got)
	}
}
