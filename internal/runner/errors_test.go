package runner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunErrorFormatting(t *testing.T) {
	plain := newRunError(ErrCodeRunNotFound, "run-1", "no run with this id in %s", "runs.json")
	assert.Equal(t, `RUN_NOT_FOUND: no run with this id in runs.json (run=run-1)`, plain.Error())

	wrapped := newRunError(ErrCodeMeasurementFailed, "run-1", "iteration %q, metric %q", "it-a", "m-1")
	wrapped.Err = errors.New("boom")
	assert.Equal(t, `MEASUREMENT_FAILED: iteration "it-a", metric "m-1" (run=run-1): boom`, wrapped.Error())
}

func TestRunErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	e := newRunError(ErrCodePersistFailed, "run-1", "appending results")
	e.Err = cause

	assert.ErrorIs(t, e, cause)
	assert.ErrorIs(t, fmt.Errorf("outer: %w", e), cause)
}

func TestErrorPredicates(t *testing.T) {
	notFound := newRunError(ErrCodeRunNotFound, "run-1", "missing")
	unknownIter := newRunError(ErrCodeUnknownIteration, "run-1", "missing")
	unknownMetric := newRunError(ErrCodeUnknownMetric, "run-1", "missing")
	failed := newRunError(ErrCodeMeasurementFailed, "run-1", "hook")

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(failed))

	assert.True(t, IsUnknownReference(unknownIter))
	assert.True(t, IsUnknownReference(unknownMetric))
	assert.False(t, IsUnknownReference(notFound))

	assert.True(t, IsMeasurementError(fmt.Errorf("wrapped: %w", failed)))
	assert.False(t, IsMeasurementError(errors.New("plain")))
}
