// Package format holds the date and money formatting shared by the client views
// and the exports.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// layouts are tried in order when parsing dates coming from the API.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"02/01/2006",
}

// ParseDate parses the date shapes the backend is known to emit.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Date formats a time as YYYY-MM-DD, or "-" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format(time.DateOnly)
}

// DateTime formats a time as YYYY-MM-DD HH:MM in local time, or "-" for the zero time.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Local().Format("2006-01-02 15:04")
}

// Amount renders a money value with two decimals.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// OptionalAmount renders a missing amount as "-".
func OptionalAmount(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}

	return Amount(*d)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}

	if n == 1 {
		return "…"
	}

	return string(r[:n-1]) + "…"
}
