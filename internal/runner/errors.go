package runner

import (
	"errors"
	"fmt"
)

// RunError represents an error detected while executing a run.
//
// Execution errors include:
//   - Unknown references: the run names an id no document defines
//   - Measurement failure: a metric hook returned an error
//   - Persistence failure: results or status could not be written back
//
// RunError includes structured fields for diagnostics; Unwrap exposes the
// underlying cause for errors.Is / errors.As chains.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// RunID identifies the affected run.
	RunID string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// RunErrorCode categorizes run execution errors.
type RunErrorCode string

const (
	// ErrCodeRunNotFound indicates the requested run id is not in runs.json.
	ErrCodeRunNotFound RunErrorCode = "RUN_NOT_FOUND"

	// ErrCodeUnknownIteration indicates the run references an iteration id
	// that iterations.json does not define.
	ErrCodeUnknownIteration RunErrorCode = "UNKNOWN_ITERATION"

	// ErrCodeUnknownMetric indicates the run references a metric id that
	// metrics.json does not define.
	ErrCodeUnknownMetric RunErrorCode = "UNKNOWN_METRIC"

	// ErrCodeMeasurementFailed indicates a metric hook (setup, measure, or
	// teardown) failed. The run is marked failed; results measured before
	// the failure are still persisted.
	ErrCodeMeasurementFailed RunErrorCode = "MEASUREMENT_FAILED"

	// ErrCodePersistFailed indicates results or run status could not be
	// written back to the configuration directory.
	ErrCodePersistFailed RunErrorCode = "PERSIST_FAILED"
)

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (run=%s): %v", e.Code, e.Message, e.RunID, e.Err)
	}
	return fmt.Sprintf("%s: %s (run=%s)", e.Code, e.Message, e.RunID)
}

// Unwrap returns the underlying cause.
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a run-not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeRunNotFound)
}

// IsUnknownReference returns true if the error is an unknown iteration or
// unknown metric reference.
func IsUnknownReference(err error) bool {
	return hasCode(err, ErrCodeUnknownIteration) || hasCode(err, ErrCodeUnknownMetric)
}

// IsMeasurementError returns true if the error is a measurement failure.
// Uses errors.As to handle wrapped errors.
func IsMeasurementError(err error) bool {
	return hasCode(err, ErrCodeMeasurementFailed)
}

func hasCode(err error, code RunErrorCode) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

func newRunError(code RunErrorCode, runID, format string, args ...any) *RunError {
	return &RunError{
		Code:    code,
		RunID:   runID,
		Message: fmt.Sprintf(format, args...),
	}
}
