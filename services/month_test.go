package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	now := time.Date(2025, time.June, 17, 15, 4, 5, 0, time.UTC)
	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		raw    string
		strict bool
		want   time.Time
		err    bool
	}{
		{"year month", "2025-03", true, march, false},
		{"full date", "2025-03-19", true, march, false},
		{"blank is current month", "  ", true, june, false},
		{"malformed strict", "March 2025", true, time.Time{}, true},
		{"malformed lenient", "2025-13", false, june, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMonth(tc.raw, tc.strict, now)
			if tc.err {
				require.ErrorIs(t, err, ErrInvalidMonth)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), AddMonths(time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC), 2))
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), AddMonths(march, -1))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, 9, d.Day())

	_, err = ParseDate("09/03/2025")
	assert.Error(t, err)
}

func TestCapHours(t *testing.T) {
	rates := DefaultRates()
	assertDecimal(t, "8", rates.CapHours(dec("12")))
	assertDecimal(t, "5.5", rates.CapHours(dec("5.5")))
}
