package service

import (
	"math"
	"time"
)

// RoundingPrecision is the number of decimal places monetary outputs are
// rounded to.
const RoundingPrecision = 2

func round(v float64) float64 {
	pow := math.Pow(10, RoundingPrecision)
	return math.Round(v*pow) / pow
}

// safeDiv divides num by den, returning fallback when den is zero. Every
// ratio in the valuation paths goes through here so that empty positions and
// zero-cost holdings degrade to a defined value instead of Inf or NaN.
func safeDiv(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

// pctOf returns num/den as a percentage, or 0 unless den is strictly
// positive. Return ratios are meaningless against a zero or negative base,
// so they degrade to 0 rather than flipping sign.
func pctOf(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * 100
}

// sanitize maps NaN and Inf to zero. Power-based metrics can blow up on
// degenerate inputs (zero cost, same-day ranges) and must never leak
// non-finite values into JSON.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addMonths advances t by n calendar months, clamping the day to the target
// month's length. Unlike time.AddDate, Jan 31 + 1 month is Feb 28/29, not
// Mar 2/3, so a schedule anchored on month-end days stays on month ends.
func addMonths(t time.Time, n int) time.Time {
	months := int(t.Month()) - 1 + n
	year := t.Year() + months/12
	month := time.Month(months%12 + 1)
	if months < 0 && months%12 != 0 {
		year--
		month = time.Month(months%12 + 13)
	}

	day := t.Day()
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// annuityPayment returns the fixed monthly payment that amortizes principal
// over n months at the given annual rate (percent). A zero rate degrades to
// straight-line principal repayment.
func annuityPayment(principal, annualRatePercent float64, n int) float64 {
	if n <= 0 || principal <= 0 {
		return 0
	}
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return principal / float64(n)
	}
	factor := math.Pow(1+r, float64(n))
	return principal * r * factor / (factor - 1)
}
