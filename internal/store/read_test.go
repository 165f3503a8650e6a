package store

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

func TestLoadIterations_Valid(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, IterationsFile, testIterationsDoc)
	s, err := Open(dir)
	require.NoError(t, err)

	cfg, err := s.LoadIterations()
	require.NoError(t, err)

	assert.Equal(t, "sorting-bench", cfg.Project)
	require.Len(t, cfg.Iterations, 2)
	assert.Equal(t, model.DefaultEntryPoint, cfg.Iterations[0].EntryPoint, "default entry point applied")
	assert.Equal(t, "run.sh", cfg.Iterations[1].EntryPoint)
}

func TestLoadIterations_MissingFile(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.LoadIterations()
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeRead, le.Code)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadIterations_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, IterationsFile, `{"iterations": [`)
	s, err := Open(dir)
	require.NoError(t, err)

	_, err = s.LoadIterations()
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeParse, le.Code)
}

func TestLoadIterations_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, IterationsFile, `{
		"iterations": [{
			"id": "iter-001",
			"name": "Baseline",
			"source_path": "iterations/baseline",
			"created_at": "2025-02-14T15:00:00Z"
		}]
	}`)
	s, err := Open(dir)
	require.NoError(t, err)

	_, err = s.LoadIterations()
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeSchema, le.Code)
	assert.NotEmpty(t, le.Findings)
}

func TestLoadIterations_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, IterationsFile, `{
		"iterations": [
			{
				"id": "iter-001",
				"name": "Baseline",
				"approach": "bubble sort",
				"source_path": "iterations/baseline",
				"created_at": "2025-02-14T15:00:00Z"
			},
			{
				"id": "iter-001",
				"name": "Also baseline",
				"approach": "bubble sort",
				"source_path": "iterations/other",
				"created_at": "2025-02-14T15:01:00Z"
			}
		]
	}`)
	s, err := Open(dir)
	require.NoError(t, err)

	_, err = s.LoadIterations()
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeSemantic, le.Code)
	require.NotEmpty(t, le.Findings)
	assert.Contains(t, le.Findings[0].Message, "iter-001")
}

func TestLoadMetrics_Valid(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, MetricsFile, testMetricsDoc)
	s, err := Open(dir)
	require.NoError(t, err)

	cfg, err := s.LoadMetrics()
	require.NoError(t, err)
	require.Len(t, cfg.Metrics, 1)
	assert.Equal(t, "metrics.ExecutionTime", cfg.Metrics[0].ImplRef)
	assert.False(t, cfg.Metrics[0].HigherIsBetter)
}

func TestLoadRuns_DefaultStatusPending(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, RunsFile, testRunsDoc)
	s, err := Open(dir)
	require.NoError(t, err)

	cfg, err := s.LoadRuns()
	require.NoError(t, err)
	require.Len(t, cfg.Runs, 1)
	assert.Equal(t, model.StatusPending, cfg.Runs[0].Status)
}

func TestLoadResults_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	cfg, err := s.LoadResults()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Results)
	assert.NotNil(t, cfg.Results, "results slice must be non-nil so it serializes as []")
}

func TestLoadResults_Valid(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, ResultsFile, `{
		"results": [{
			"run_id": "run-001",
			"iteration_id": "iter-001",
			"metric_id": "metric-001",
			"value": 1.5,
			"unit": "seconds",
			"executed_at": "2025-02-14T16:00:00Z"
		}]
	}`)
	s, err := Open(dir)
	require.NoError(t, err)

	cfg, err := s.LoadResults()
	require.NoError(t, err)
	require.Len(t, cfg.Results, 1)
	assert.Equal(t, 1.5, cfg.Results[0].Value)
}

func TestLoadResults_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, ResultsFile, `{"results": [{"run_id": "run-001"}]}`)
	s, err := Open(dir)
	require.NoError(t, err)

	_, err = s.LoadResults()
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeSchema, le.Code)
}
