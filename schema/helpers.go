package schema

import (
	"fmt"
	"math"
	"strings"
)

// FormatMoney formats a dollar amount compactly, e.g. "$8.5M", "$750K", "$900".
func FormatMoney(amount float64) string {
	if amount == 0 || math.IsNaN(amount) {
		return "-"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	switch {
	case amount >= 1e9:
		return fmt.Sprintf("%s$%sB", sign, trimFloat(amount/1e9))
	case amount >= 1e6:
		return fmt.Sprintf("%s$%sM", sign, trimFloat(amount/1e6))
	case amount >= 1e3:
		return fmt.Sprintf("%s$%sK", sign, trimFloat(amount/1e3))
	default:
		return fmt.Sprintf("%s$%.0f", sign, amount)
	}
}

// trimFloat renders v with at most one decimal, dropping a trailing ".0".
func trimFloat(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}

// FormatMultiple renders a valuation multiple like "4.7x", or "-" when undefined.
func FormatMultiple(c CompanyRecord) string {
	multiple, ok := c.ValuationMultiple()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1fx", multiple)
}

// TopSignals returns at most n signals from the front of the list.
// A non-positive n returns all signals.
func TopSignals(signals []Signal, n int) []Signal {
	if n <= 0 || n >= len(signals) {
		return signals
	}
	return signals[:n]
}

// JoinSignals renders signal texts separated by sep.
func JoinSignals(signals []Signal, sep string) string {
	texts := make([]string, len(signals))
	for i, s := range signals {
		texts[i] = s.Text
	}
	return strings.Join(texts, sep)
}

// SignalsEqual compares two signal lists in order.
func SignalsEqual(a, b []Signal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
