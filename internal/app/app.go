package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"surveycli/internal/config"
	"surveycli/internal/dataprocessing"
	"surveycli/internal/exporter"
	"surveycli/internal/infrastructure"
	"surveycli/internal/operations"
)

// RunOptions carries the per-run parameters supplied by the caller.
// Zero values fall back to the configured defaults.
type RunOptions struct {
	SourceDir string
	DestDir   string
}

// Application wires the pipeline stages together from configuration and
// owns the run lifecycle. It is the single assembly point: main builds
// one Application and calls Run.
type Application struct {
	config    *config.Config
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	pipeline  *operations.Pipeline
}

// NewApplication assembles the pipeline from configuration. The logger
// and telemetry providers must already be initialized.
func NewApplication(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders) *Application {
	pipeline := operations.NewPipeline(logger, providers,
		operations.NewLoadStep(dataprocessing.NewLoader(logger, dataprocessing.LoaderConfig{
			AllowEmptySource: cfg.Pipeline.AllowEmptySource,
		})),
		operations.NewAggregateStep(dataprocessing.NewAggregator(logger, dataprocessing.AggregatorConfig{
			RequireData: cfg.Pipeline.RequireData,
		})),
		operations.NewReportStep(exporter.NewReporter(logger, exporter.ReporterConfig{
			Format: cfg.Pipeline.ReportFormat,
		})),
	)

	return &Application{
		config:    cfg,
		logger:    logger,
		providers: providers,
		pipeline:  pipeline,
	}
}

// Run executes one complete pipeline run and returns the path of the
// written report artifact.
func (a *Application) Run(ctx context.Context, opts RunOptions) (string, error) {
	sourceDir := opts.SourceDir
	if sourceDir == "" {
		sourceDir = a.config.GetRawDir()
	}
	destDir := opts.DestDir
	if destDir == "" {
		destDir = a.config.GetReportsDir()
	}

	// Each run gets its own identity; the run ID also disambiguates
	// report file names when two runs share a timestamp.
	runID := uuid.NewString()
	runAt := time.Now()
	ctx = infrastructure.WithRunID(ctx, runID)

	a.logger.InfoContext(ctx, "Starting survey report run",
		slog.String("source_dir", sourceDir),
		slog.String("dest_dir", destDir),
		slog.String("format", a.config.Pipeline.ReportFormat))

	state := operations.NewRunState(runID, runAt, sourceDir, destDir)
	if err := a.pipeline.Execute(ctx, state); err != nil {
		return "", err
	}

	a.logger.InfoContext(ctx, "Run complete",
		slog.String("report", state.ReportPath),
		slog.Duration("elapsed", time.Since(runAt)))

	return state.ReportPath, nil
}
