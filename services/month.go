package services

import (
	"fmt"
	"strings"
	"time"
)

// MonthStart returns 00:00 UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts a month start by n months.
func AddMonths(month time.Time, n int) time.Time {
	return MonthStart(month).AddDate(0, n, 0)
}

// ParseMonth accepts YYYY-MM or YYYY-MM-DD. An empty value yields the month
// containing now. When strict is false a malformed value also falls back to
// the current month instead of failing.
func ParseMonth(raw string, strict bool, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MonthStart(now), nil
	}

	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return MonthStart(t), nil
		}
	}

	if !strict {
		return MonthStart(now), nil
	}
	return time.Time{}, fmt.Errorf("%q: %w", raw, ErrInvalidMonth)
}

// ParseDate parses a YYYY-MM-DD value, returning nil for empty input.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return &t, nil
}
