package narrative

import (
	"fmt"
	"math"
)

// Placeholder is rendered wherever a metric value is missing or malformed,
// instead of propagating the hole into the view.
const Placeholder = "n/a"

// FormatNumber renders an optional numeric value for display.
func FormatNumber(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}
	return fmt.Sprintf("%.1f", *v)
}

// FormatPercent renders an optional [0,1] fraction as a whole percentage.
func FormatPercent(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}
	return fmt.Sprintf("%.0f%%", *v*100)
}

// FormatMonths renders an optional month count.
func FormatMonths(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}
	return fmt.Sprintf("%.0f months", *v)
}
