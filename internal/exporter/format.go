package exporter

import (
	"fmt"
)

// undefinedRateMarker is printed for an empty dataset, where the overall
// support rate is undefined rather than zero.
const undefinedRateMarker = "no data"

// formatRate formats a support rate with exactly 3 decimal places, matching
// the report's historical layout.
func formatRate(rate float64) string {
	return fmt.Sprintf("%.3f", rate)
}

// formatGroupLine formats one category line of a dimension block.
func formatGroupLine(category string, respondents int, rate float64) string {
	return fmt.Sprintf("  %-20s — respondents: %4d, support_rate: %s",
		category, respondents, formatRate(rate))
}
