package utils

import (
	"fmt"
	"time"
)

// FormatIndianCurrency renders an amount in Indian units. Values at or above
// one crore render as Crore, at or above one lakh as Lakh, otherwise with a
// plain rupee prefix.
func FormatIndianCurrency(amount float64) string {
	negative := amount < 0
	abs := amount
	if negative {
		abs = -abs
	}

	var formatted string
	switch {
	case abs >= 1e7:
		formatted = fmt.Sprintf("₹%.2f Cr", abs/1e7)
	case abs >= 1e5:
		formatted = fmt.Sprintf("₹%.2f L", abs/1e5)
	default:
		formatted = fmt.Sprintf("₹%.2f", abs)
	}

	if negative {
		return "-" + formatted
	}
	return formatted
}

// EndOfDay bumps t to 23:59:59.999 in its own location, making toDate
// filters inclusive.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthKey formats t as the YYYY-MM bucket key used by trend series.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// LastNMonthKeys returns the month keys for the n months ending at now,
// oldest first.
func LastNMonthKeys(now time.Time, n int) []string {
	keys := make([]string, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, MonthKey(first.AddDate(0, -i, 0)))
	}
	return keys
}
