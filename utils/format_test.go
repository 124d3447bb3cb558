package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatIndianCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "₹0.00"},
		{950, "₹950.00"},
		{99999, "₹99999.00"},
		{100000, "₹1.00 L"},
		{250000, "₹2.50 L"},
		{9999999, "₹100.00 L"},
		{10000000, "₹1.00 Cr"},
		{125000000, "₹12.50 Cr"},
		{-250000, "-₹2.50 L"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatIndianCurrency(tc.amount), "amount %v", tc.amount)
	}
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	assert.NoError(t, err)

	at := time.Date(2026, 8, 15, 14, 45, 30, 123, loc)

	start := StartOfDay(at)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, loc), start)

	end := EndOfDay(at)
	assert.Equal(t, time.Date(2026, 8, 15, 23, 59, 59, 999000000, loc), end)
	assert.Equal(t, loc, end.Location())
}

func TestMonthKeys(t *testing.T) {
	assert.Equal(t, "2026-08", MonthKey(time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)))

	keys := LastNMonthKeys(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), 4)
	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01", "2026-02"}, keys)
}
