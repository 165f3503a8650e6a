// Package metric defines the measurement contract and the built-in metric
// implementations.
//
// A metric is a procedure that produces one numeric measurement for one
// iteration. Measure is the only required method; Setup and Teardown are
// lifecycle hooks that default to no-ops through the embedded Base.
// Implementations are constructed per measurement through registered
// factories, so no state leaks between iterations.
package metric

import (
	"context"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

// Target identifies what a metric measures: one iteration's working tree
// and how to invoke it.
type Target struct {
	// Dir is the iteration source directory. Subprocesses run with Dir as
	// their working directory.
	Dir string

	// EntryPoint is the entry-point filename inside Dir.
	EntryPoint string

	// Parameters is the iteration's parameter map, passed through unmodified.
	Parameters map[string]any

	// Interpreters maps entry-point extensions to commands (from settings).
	Interpreters map[string]string
}

// Result is one measurement produced by a metric.
type Result struct {
	Value    float64
	Unit     string
	Metadata map[string]any
}

// Metric is a measurement procedure.
type Metric interface {
	// Setup prepares the metric for one measurement. Optional.
	Setup(ctx context.Context, target Target) error

	// Measure produces the measurement. A measurement may block for the
	// duration of an external subprocess; cancel ctx to interrupt it.
	Measure(ctx context.Context, target Target) (Result, error)

	// Teardown releases anything Setup acquired. It runs even when
	// Measure fails. Optional.
	Teardown(ctx context.Context, target Target) error
}

// Factory builds a metric implementation from its definition. The registry
// stores factories keyed by implementation reference.
type Factory func(def model.MetricDefinition) (Metric, error)

// Base provides no-op Setup and Teardown. Implementations embed Base and
// override only what they need.
type Base struct{}

func (Base) Setup(context.Context, Target) error    { return nil }
func (Base) Teardown(context.Context, Target) error { return nil }

// unitOr returns the definition's unit when set, else the implementation's
// native unit.
func unitOr(defUnit, native string) string {
	if defUnit != "" {
		return defUnit
	}
	return native
}
