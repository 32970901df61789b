// Package cli provides formatting and rendering utilities for terminal
// output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats an amount with the configured currency symbol.
// Whole amounts drop the decimals: 1234.5 -> "$1,234.50", 1200 -> "$1,200".
func FormatMoney(symbol string, amount float64) string {
	neg := amount < 0
	abs := math.Abs(amount)

	whole := math.Floor(abs)
	frac := abs - whole

	s := symbol + FormatNumber(int64(whole))
	if frac >= 0.005 {
		s += fmt.Sprintf(".%02d", int(math.Round(frac*100))%100)
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatDayOfWeek returns the short weekday name.
func FormatDayOfWeek(wd time.Weekday) string {
	return wd.String()[:3]
}
