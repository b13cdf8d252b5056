package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"surveycli/internal/errors"
	"surveycli/pkg/contracts/domain"
)

// AggregatorConfig holds run-policy options for the aggregator.
type AggregatorConfig struct {
	// RequireData makes an empty dataset a fatal EmptyDataset error.
	// When false, emptiness flows through as an undefined overall rate.
	RequireData bool
}

// Aggregator reduces a SurveyDataset to a SupportSummary. The result is a
// pure function of the record multiset: permuting row order or re-running on
// the same dataset yields identical values.
type Aggregator struct {
	logger *slog.Logger
	config AggregatorConfig
}

// NewAggregator creates an aggregator with the given policy.
func NewAggregator(logger *slog.Logger, config AggregatorConfig) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger, config: config}
}

// Aggregate computes the overall support rate and one breakdown per
// demographic dimension. Raw within-dataset rates are reported as-is; no
// population reweighting is applied.
func (a *Aggregator) Aggregate(ctx context.Context, dataset *domain.SurveyDataset) (*domain.SupportSummary, error) {
	if dataset.IsEmpty() {
		if a.config.RequireData {
			return nil, errors.NewEmptyDataset()
		}
		a.logger.WarnContext(ctx, "empty dataset, overall rate is undefined")
		return &domain.SupportSummary{
			Dimensions:  emptyBreakdowns(),
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	total := dataset.Len()
	supporters := 0
	for _, rec := range dataset.Records {
		if rec.Supports() {
			supporters++
		}
	}

	summary := &domain.SupportSummary{
		Overall: &domain.GroupStat{
			Category:    "overall",
			Respondents: total,
			SupportRate: float64(supporters) / float64(total),
		},
		Respondents: total,
		GeneratedAt: time.Now().UTC(),
	}

	for _, dim := range domain.Dimensions {
		summary.Dimensions = append(summary.Dimensions, a.breakdown(dataset, dim))
	}

	a.logger.InfoContext(ctx, "aggregation complete",
		slog.Int("respondents", total),
		slog.Float64("overall_rate", summary.Overall.SupportRate))

	return summary, nil
}

// breakdown computes per-category support rates for one dimension. Only
// observed category values are emitted, sorted lexically.
func (a *Aggregator) breakdown(dataset *domain.SurveyDataset, dim domain.Dimension) domain.DimensionBreakdown {
	type counts struct {
		total      int
		supporters int
	}

	byCategory := make(map[string]*counts)
	for _, rec := range dataset.Records {
		value := rec.Value(dim)
		c, ok := byCategory[value]
		if !ok {
			c = &counts{}
			byCategory[value] = c
		}
		c.total++
		if rec.Supports() {
			c.supporters++
		}
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	breakdown := domain.DimensionBreakdown{
		Dimension: dim,
		Groups:    make([]domain.GroupStat, 0, len(categories)),
	}
	for _, category := range categories {
		c := byCategory[category]
		breakdown.Groups = append(breakdown.Groups, domain.GroupStat{
			Category:    category,
			Respondents: c.total,
			SupportRate: float64(c.supporters) / float64(c.total),
		})
	}

	return breakdown
}

// emptyBreakdowns returns one empty breakdown per dimension so that report
// structure stays stable even for an empty dataset.
func emptyBreakdowns() []domain.DimensionBreakdown {
	breakdowns := make([]domain.DimensionBreakdown, 0, len(domain.Dimensions))
	for _, dim := range domain.Dimensions {
		breakdowns = append(breakdowns, domain.DimensionBreakdown{Dimension: dim})
	}
	return breakdowns
}
