package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanremacle/benchmark-framework/internal/metric"
	"github.com/jeanremacle/benchmark-framework/internal/model"
	"github.com/jeanremacle/benchmark-framework/internal/testutil"
)

func execListCommand(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func listConfig(t *testing.T) string {
	t.Helper()
	iterations := &model.IterationsConfig{Iterations: []model.Iteration{
		demoIteration("it-a", "Variant A"),
		demoIteration("it-b", "Variant B"),
	}}
	metrics := &model.MetricsConfig{Metrics: []model.MetricDefinition{
		{ID: "m-time", Name: "Execution time", Type: "performance", ImplRef: metric.RefExecutionTime, Unit: "seconds"},
		{ID: "m-thr", Name: "Throughput", Type: "performance", ImplRef: "test.Throughput", HigherIsBetter: true, Unit: "ops/s"},
	}}
	runs := &model.RunsConfig{Runs: []model.RunDefinition{
		demoRun("run-1", "Demo comparison", model.StatusPending, []string{"it-a", "it-b"}),
	}}
	return testutil.ConfigDir(t, iterations, metrics, runs, nil)
}

func TestListAllSections(t *testing.T) {
	dir := listConfig(t)

	buf, err := execListCommand(t, "text", dir)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "=== Iterations ===")
	assert.Contains(t, output, "Variant A (demo)")
	assert.Contains(t, output, "Variant B (demo)")
	assert.Contains(t, output, "=== Metrics ===")
	assert.Contains(t, output, "Execution time class=metrics.ExecutionTime lower-is-better")
	assert.Contains(t, output, "Throughput class=test.Throughput higher-is-better")
	assert.Contains(t, output, "=== Runs ===")
	assert.Contains(t, output, "Demo comparison [pending] 2 iterations, 1 metrics")
}

func TestListSingleKind(t *testing.T) {
	dir := listConfig(t)

	buf, err := execListCommand(t, "text", "--kind", "runs", dir)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "=== Runs ===")
	assert.NotContains(t, output, "=== Iterations ===")
	assert.NotContains(t, output, "=== Metrics ===")
}

func TestListEmptyDocuments(t *testing.T) {
	dir := testutil.ConfigDir(t,
		&model.IterationsConfig{Iterations: []model.Iteration{}},
		&model.MetricsConfig{Metrics: []model.MetricDefinition{}},
		&model.RunsConfig{Runs: []model.RunDefinition{}},
		nil)

	buf, err := execListCommand(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "  (none)")
}

func TestListJSONFormat(t *testing.T) {
	dir := listConfig(t)

	buf, err := execListCommand(t, "json", "--kind", "metrics", dir)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"status":"ok"`)
	assert.Contains(t, output, `"id":"m-time"`)
	assert.NotContains(t, output, `"iterations"`)
}

func TestListInvalidKind(t *testing.T) {
	dir := listConfig(t)

	_, err := execListCommand(t, "text", "--kind", "bogus", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid kind "bogus"`)
}

func TestListNonExistentDir(t *testing.T) {
	_, err := execListCommand(t, "text", "/nonexistent/directory")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
