package operations

import (
	"context"
	"fmt"

	"surveycli/internal/dataprocessing"
	"surveycli/internal/exporter"
)

// Step IDs for the three pipeline stages.
const (
	StepIDLoad      = "load"
	StepIDAggregate = "aggregate"
	StepIDReport    = "report"
)

// LoadStep reads all survey input files into the run's dataset.
type LoadStep struct {
	loader *dataprocessing.Loader
}

// NewLoadStep creates the loading stage.
func NewLoadStep(loader *dataprocessing.Loader) *LoadStep {
	return &LoadStep{loader: loader}
}

func (s *LoadStep) ID() string   { return StepIDLoad }
func (s *LoadStep) Name() string { return "Load survey data" }

func (s *LoadStep) Validate(state *RunState) error {
	if state.SourceDir == "" {
		return fmt.Errorf("source directory is not set")
	}
	return nil
}

func (s *LoadStep) Execute(ctx context.Context, state *RunState) error {
	dataset, err := s.loader.Load(ctx, state.SourceDir)
	if err != nil {
		return err
	}
	state.Dataset = dataset
	return nil
}

// AggregateStep reduces the dataset to a support summary.
type AggregateStep struct {
	aggregator *dataprocessing.Aggregator
}

// NewAggregateStep creates the aggregation stage.
func NewAggregateStep(aggregator *dataprocessing.Aggregator) *AggregateStep {
	return &AggregateStep{aggregator: aggregator}
}

func (s *AggregateStep) ID() string   { return StepIDAggregate }
func (s *AggregateStep) Name() string { return "Aggregate support rates" }

func (s *AggregateStep) Validate(state *RunState) error {
	if state.Dataset == nil {
		return fmt.Errorf("dataset is not loaded")
	}
	return nil
}

func (s *AggregateStep) Execute(ctx context.Context, state *RunState) error {
	summary, err := s.aggregator.Aggregate(ctx, state.Dataset)
	if err != nil {
		return err
	}
	state.Summary = summary
	return nil
}

// ReportStep writes the summary to the report artifact.
type ReportStep struct {
	reporter *exporter.Reporter
}

// NewReportStep creates the reporting stage.
func NewReportStep(reporter *exporter.Reporter) *ReportStep {
	return &ReportStep{reporter: reporter}
}

func (s *ReportStep) ID() string   { return StepIDReport }
func (s *ReportStep) Name() string { return "Write report" }

func (s *ReportStep) Validate(state *RunState) error {
	if state.Summary == nil {
		return fmt.Errorf("summary is not computed")
	}
	if state.DestDir == "" {
		return fmt.Errorf("destination directory is not set")
	}
	return nil
}

func (s *ReportStep) Execute(ctx context.Context, state *RunState) error {
	path, err := s.reporter.Write(ctx, state.DestDir, state.Summary, state.StartedAt, state.RunID)
	if err != nil {
		return err
	}
	state.ReportPath = path
	return nil
}
