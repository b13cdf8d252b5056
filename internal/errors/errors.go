// Package errors defines the typed error taxonomy for the survey reporting
// pipeline. Every fatal condition a run can hit maps to a Kind, and errors
// carry the stage and enough context (file, row, field) for the operator to
// locate the cause without re-running.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline error.
type Kind string

const (
	KindSourceNotFound        Kind = "source_not_found"
	KindNoInputFiles          Kind = "no_input_files"
	KindMalformedRecord       Kind = "malformed_record"
	KindEmptyDataset          Kind = "empty_dataset"
	KindDestinationUnwritable Kind = "destination_unwritable"
	KindCancelled             Kind = "cancelled"
	KindExecution             Kind = "execution"
)

// PipelineError represents a pipeline-specific error with stage context.
type PipelineError struct {
	Kind    Kind                   `json:"kind"`
	Stage   string                 `json:"stage,omitempty"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e == nil {
		return "unknown pipeline error"
	}
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Stage, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// KindOf returns the kind of the error, or KindExecution for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var pErr *PipelineError
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return KindExecution
}

// StageOf returns the stage recorded on the error, if any.
func StageOf(err error) string {
	var pErr *PipelineError
	if errors.As(err, &pErr) {
		return pErr.Stage
	}
	return ""
}

// IsKind reports whether the error carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// NewSourceNotFound reports a missing or unreadable source directory.
func NewSourceNotFound(dir string, cause error) *PipelineError {
	return &PipelineError{
		Kind:    KindSourceNotFound,
		Message: fmt.Sprintf("source directory %s does not exist", dir),
		Cause:   cause,
		Context: map[string]interface{}{"directory": dir},
	}
}

// NewNoInputFiles reports a source directory with zero matching input files.
func NewNoInputFiles(dir string) *PipelineError {
	return &PipelineError{
		Kind:    KindNoInputFiles,
		Message: fmt.Sprintf("no survey input files found in %s", dir),
		Context: map[string]interface{}{"directory": dir},
	}
}

// NewMalformedRecord reports a row that violates the record contract.
// Row numbers are 1-based file line numbers, header included.
func NewMalformedRecord(file string, row int, detail string, cause error) *PipelineError {
	return &PipelineError{
		Kind:    KindMalformedRecord,
		Message: fmt.Sprintf("malformed record in %s row %d: %s", file, row, detail),
		Cause:   cause,
		Context: map[string]interface{}{
			"file": file,
			"row":  row,
		},
	}
}

// NewMalformedFile reports a file rejected before row parsing, such as a
// header that does not match the required column set.
func NewMalformedFile(file string, detail string, cause error) *PipelineError {
	return &PipelineError{
		Kind:    KindMalformedRecord,
		Message: fmt.Sprintf("malformed input file %s: %s", file, detail),
		Cause:   cause,
		Context: map[string]interface{}{"file": file},
	}
}

// NewEmptyDataset reports an empty dataset where the run policy requires a
// defined overall rate.
func NewEmptyDataset() *PipelineError {
	return &PipelineError{
		Kind:    KindEmptyDataset,
		Message: "dataset contains no records and the run policy requires data",
	}
}

// NewDestinationUnwritable reports a report destination that cannot be
// created or written.
func NewDestinationUnwritable(path string, cause error) *PipelineError {
	return &PipelineError{
		Kind:    KindDestinationUnwritable,
		Message: fmt.Sprintf("cannot write report to %s", path),
		Cause:   cause,
		Context: map[string]interface{}{"path": path},
	}
}

// NewCancelled reports a run cancelled between stages.
func NewCancelled(stage string, cause error) *PipelineError {
	return &PipelineError{
		Kind:    KindCancelled,
		Stage:   stage,
		Message: "run was cancelled",
		Cause:   cause,
	}
}

// WrapStage attaches stage context to an error. Pipeline errors keep their
// kind; foreign errors become execution errors.
func WrapStage(err error, stage string) *PipelineError {
	if err == nil {
		return nil
	}

	var pErr *PipelineError
	if errors.As(err, &pErr) {
		if pErr.Stage == "" {
			pErr.Stage = stage
		}
		return pErr
	}

	return &PipelineError{
		Kind:    KindExecution,
		Stage:   stage,
		Message: err.Error(),
		Cause:   err,
	}
}
