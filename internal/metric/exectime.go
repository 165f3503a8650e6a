package metric

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

// ExecutionTime measures the wall-clock duration of one invocation of the
// iteration's entry point. The process inherits nothing from the harness
// beyond its environment; stdout and stderr are captured, and a non-zero
// exit is a measurement failure carrying the exit code and stderr.
type ExecutionTime struct {
	Base
	def model.MetricDefinition
}

// NewExecutionTime is the registered factory for ExecutionTime.
func NewExecutionTime(def model.MetricDefinition) (Metric, error) {
	return &ExecutionTime{def: def}, nil
}

func (m *ExecutionTime) Measure(ctx context.Context, target Target) (Result, error) {
	cmd, err := CommandFor(ctx, target)
	if err != nil {
		return Result{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		return Result{}, exitErrorf(runErr, stderr.Bytes())
	}

	return Result{
		Value: elapsed.Seconds(),
		Unit:  unitOr(m.def.Unit, "seconds"),
		Metadata: map[string]any{
			"stdout_lines": countLines(stdout.String()),
			"exit_code":    0,
			"command":      strings.Join(cmd.Args, " "),
		},
	}, nil
}

// countLines counts output lines. A trailing newline does not start an
// empty final line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
