package repository

import (
	"fmt"
	"time"
)

// timestampLayout is the DATETIME column representation. The fractional
// second is fixed-width so the stored strings sort lexically in
// chronological order; RFC3339Nano trims trailing zeros, which breaks
// ORDER BY created_at for same-second rows (".5Z" sorts after ".52Z").
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ParseTime parses a date string in "2006-01-02", RFC3339, or RFC3339Nano
// format, returning the time in UTC.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// FormatDate formats a time as the DATE column representation.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTimestamp formats a time as the DATETIME column representation.
// Nanosecond precision keeps insertion order recoverable for same-day rows.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
