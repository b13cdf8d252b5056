package operations

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"surveycli/internal/errors"
	"surveycli/internal/infrastructure"
)

// Pipeline executes steps strictly in declaration order, short-circuiting
// on the first failure. No partial report is ever produced: the reporting
// stage only runs after loading and aggregation both completed.
type Pipeline struct {
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	steps     []Step
}

// NewPipeline creates a pipeline over the given steps.
func NewPipeline(logger *slog.Logger, providers *infrastructure.OTelProviders, steps ...Step) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:    logger,
		providers: providers,
		steps:     steps,
	}
}

// Execute runs all steps against the given state. The returned error
// carries the failed stage and error kind; state.Steps records per-step
// timing and status for diagnostics.
func (p *Pipeline) Execute(ctx context.Context, state *RunState) error {
	ctx = infrastructure.WithRunID(ctx, state.RunID)

	p.logger.InfoContext(ctx, "pipeline run starting",
		slog.String("source_dir", state.SourceDir),
		slog.String("dest_dir", state.DestDir),
		slog.Time("started_at", state.StartedAt),
		slog.Int("steps", len(p.steps)))

	start := time.Now()
	for _, step := range p.steps {
		// Cancellation is checked between stages only, so a stage either
		// fully completes or fully fails.
		if err := ctx.Err(); err != nil {
			return errors.NewCancelled(step.ID(), err)
		}

		if err := p.executeStep(ctx, step, state); err != nil {
			p.logger.ErrorContext(ctx, "pipeline run failed",
				slog.String("stage", step.ID()),
				slog.String("kind", string(errors.KindOf(err))),
				slog.String("error", err.Error()))
			return errors.WrapStage(err, step.ID())
		}
	}

	p.logger.InfoContext(ctx, "pipeline run completed",
		slog.String("report_path", state.ReportPath),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// executeStep validates and runs one step, recording its state and span.
func (p *Pipeline) executeStep(ctx context.Context, step Step, state *RunState) error {
	stepState := NewStepState(step.ID(), step.Name())
	state.Steps = append(state.Steps, stepState)

	ctx, span := p.providers.StartStageSpan(ctx, step.ID())
	defer span.End()

	if err := step.Validate(state); err != nil {
		stepState.Fail(err)
		span.SetStatus(codes.Error, "stage validation failed")
		return err
	}

	stepState.Start()
	p.logger.InfoContext(ctx, "stage starting", slog.String("stage", step.ID()))

	if err := step.Execute(ctx, state); err != nil {
		stepState.Fail(err)
		span.SetStatus(codes.Error, "stage execution failed")
		return err
	}

	stepState.Complete()
	span.SetStatus(codes.Ok, "stage completed")
	p.logger.InfoContext(ctx, "stage completed",
		slog.String("stage", step.ID()),
		slog.Duration("duration", stepState.Duration()))

	return nil
}
