package domain

import "time"

// GroupStat holds the support statistics for one observed category value
// within a dimension. Only observed categories are ever emitted, so
// Respondents is always positive and SupportRate is always defined.
type GroupStat struct {
	Category    string  `json:"category"`
	Respondents int     `json:"respondents"`
	SupportRate float64 `json:"support_rate"`
}

// DimensionBreakdown holds the per-category statistics for one demographic
// dimension, with categories sorted lexically for deterministic output.
type DimensionBreakdown struct {
	Dimension Dimension   `json:"dimension"`
	Groups    []GroupStat `json:"groups"`
}

// TotalRespondents returns the sum of the group sizes, which by construction
// equals the dataset record count.
func (b DimensionBreakdown) TotalRespondents() int {
	total := 0
	for _, g := range b.Groups {
		total += g.Respondents
	}
	return total
}

// Group returns the statistics for the given category value, if observed.
func (b DimensionBreakdown) Group(category string) (GroupStat, bool) {
	for _, g := range b.Groups {
		if g.Category == category {
			return g, true
		}
	}
	return GroupStat{}, false
}

// SupportSummary is the aggregation result consumed by the reporter.
// Overall is nil when the dataset is empty: the overall rate is explicitly
// undefined in that case, not zero.
type SupportSummary struct {
	Overall     *GroupStat           `json:"overall,omitempty"`
	Respondents int                  `json:"respondents"`
	Dimensions  []DimensionBreakdown `json:"dimensions"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// OverallRate returns the overall support rate and whether it is defined.
func (s *SupportSummary) OverallRate() (float64, bool) {
	if s == nil || s.Overall == nil {
		return 0, false
	}
	return s.Overall.SupportRate, true
}

// Breakdown returns the breakdown for the given dimension, if present.
func (s *SupportSummary) Breakdown(dim Dimension) (DimensionBreakdown, bool) {
	if s == nil {
		return DimensionBreakdown{}, false
	}
	for _, b := range s.Dimensions {
		if b.Dimension == dim {
			return b, true
		}
	}
	return DimensionBreakdown{}, false
}
