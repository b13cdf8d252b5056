package operations

import (
	"context"
	"sync"
	"time"

	"surveycli/pkg/contracts/domain"
)

// Step represents a single stage in the pipeline.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() string

	// Name returns the human-readable name for this step.
	Name() string

	// Validate checks if the step can be executed with the current state.
	Validate(state *RunState) error

	// Execute runs the step with the given context and run state.
	Execute(ctx context.Context, state *RunState) error
}

// StepStatus represents the current status of a step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepState records the runtime state of one executed step.
type StepState struct {
	mu        sync.RWMutex
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Error     error      `json:"-"`
}

// NewStepState creates a step state with default values.
func NewStepState(id, name string) *StepState {
	return &StepState{
		ID:     id,
		Name:   name,
		Status: StepStatusPending,
	}
}

// Start marks the step as active and sets the start time.
func (s *StepState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.StartTime = &now
	s.Status = StepStatusActive
}

// Complete marks the step as completed and sets the end time.
func (s *StepState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusCompleted
}

// Fail marks the step as failed with the given error.
func (s *StepState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusFailed
	s.Error = err
}

// Duration returns the duration of the step execution.
func (s *StepState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// RunState carries one run's identity and the data handed from stage to
// stage. It is created fresh per run and owned exclusively by it.
type RunState struct {
	RunID     string
	StartedAt time.Time

	SourceDir string
	DestDir   string

	Dataset    *domain.SurveyDataset
	Summary    *domain.SupportSummary
	ReportPath string

	Steps []*StepState
}

// NewRunState creates the state for a fresh run.
func NewRunState(runID string, startedAt time.Time, sourceDir, destDir string) *RunState {
	return &RunState{
		RunID:     runID,
		StartedAt: startedAt,
		SourceDir: sourceDir,
		DestDir:   destDir,
	}
}
