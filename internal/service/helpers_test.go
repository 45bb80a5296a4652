package service

import (
	"math"
	"testing"
	"time"
)

func TestAddMonths(t *testing.T) {
	utc := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"mid-month advance", utc(2024, 1, 15), 1, utc(2024, 2, 15)},
		{"month-end clamps to leap February", utc(2024, 1, 31), 1, utc(2024, 2, 29)},
		{"month-end clamps to plain February", utc(2023, 1, 31), 1, utc(2023, 2, 28)},
		{"year rollover", utc(2024, 11, 15), 3, utc(2025, 2, 15)},
		{"many years", utc(2024, 1, 15), 360, utc(2054, 1, 15)},
		{"negative offset", utc(2024, 3, 31), -1, utc(2024, 2, 29)},
		{"zero offset", utc(2024, 1, 15), 0, utc(2024, 1, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := addMonths(tc.in, tc.n)
			if !got.Equal(tc.want) {
				t.Errorf("addMonths(%v, %d) = %v, want %v", tc.in, tc.n, got, tc.want)
			}
		})
	}
}

func TestAnnuityPayment(t *testing.T) {
	t.Run("standard thirty-year loan", func(t *testing.T) {
		got := annuityPayment(500000, 4, 360)
		if math.Abs(got-2387.08) > 0.5 {
			t.Errorf("annuityPayment(500000, 4, 360) = %v, want about 2387.08", got)
		}
	})

	t.Run("zero rate degrades to straight-line", func(t *testing.T) {
		got := annuityPayment(12000, 0, 12)
		if got != 1000 {
			t.Errorf("annuityPayment(12000, 0, 12) = %v, want 1000", got)
		}
	})

	t.Run("degenerate inputs return zero", func(t *testing.T) {
		if got := annuityPayment(0, 4, 360); got != 0 {
			t.Errorf("Expected 0 for zero principal, got %v", got)
		}
		if got := annuityPayment(500000, 4, 0); got != 0 {
			t.Errorf("Expected 0 for zero term, got %v", got)
		}
	})
}

func TestSafeDiv(t *testing.T) {
	if got := safeDiv(10, 4, 0); got != 2.5 {
		t.Errorf("safeDiv(10, 4, 0) = %v, want 2.5", got)
	}
	if got := safeDiv(10, 0, 4.5); got != 4.5 {
		t.Errorf("safeDiv(10, 0, 4.5) = %v, want fallback 4.5", got)
	}
}

func TestPctOf(t *testing.T) {
	if got := pctOf(50, 200); got != 25 {
		t.Errorf("pctOf(50, 200) = %v, want 25", got)
	}
	if got := pctOf(50, 0); got != 0 {
		t.Errorf("pctOf(50, 0) = %v, want 0", got)
	}
	// A negative base has no meaningful return ratio; the sign of the
	// quotient would be the opposite of the gain.
	if got := pctOf(50, -200); got != 0 {
		t.Errorf("pctOf(50, -200) = %v, want 0", got)
	}
	if got := pctOf(-50, -200); got != 0 {
		t.Errorf("pctOf(-50, -200) = %v, want 0", got)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize(math.NaN()); got != 0 {
		t.Errorf("sanitize(NaN) = %v, want 0", got)
	}
	if got := sanitize(math.Inf(1)); got != 0 {
		t.Errorf("sanitize(+Inf) = %v, want 0", got)
	}
	if got := sanitize(math.Inf(-1)); got != 0 {
		t.Errorf("sanitize(-Inf) = %v, want 0", got)
	}
	if got := sanitize(1.5); got != 1.5 {
		t.Errorf("sanitize(1.5) = %v, want 1.5", got)
	}
}

func TestRound(t *testing.T) {
	if got := round(1.005); got != 1.01 && got != 1.0 {
		// 1.005 is not exactly representable; either neighbor is accepted.
		t.Errorf("round(1.005) = %v", got)
	}
	if got := round(2.344); got != 2.34 {
		t.Errorf("round(2.344) = %v, want 2.34", got)
	}
	if got := round(2.345); got != 2.35 && got != 2.34 {
		t.Errorf("round(2.345) = %v", got)
	}
}
