package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanremacle/benchmark-framework/internal/model"
	"github.com/jeanremacle/benchmark-framework/internal/store"
	"github.com/jeanremacle/benchmark-framework/internal/testutil"
)

var (
	reportCreatedAt = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	reportNow       = time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)
)

func fixedNow() time.Time { return reportNow }

func sortingDocs() (*model.IterationsConfig, *model.MetricsConfig, *model.RunsConfig, *model.ResultsConfig) {
	iterations := &model.IterationsConfig{
		Project: "Sorting Study",
		Iterations: []model.Iteration{
			{ID: "it-bubble", Name: "Bubble sort", Approach: "nested loops", SourcePath: "src/bubble", CreatedAt: reportCreatedAt},
			{ID: "it-quick", Name: "Quick sort", Approach: "divide and conquer", SourcePath: "src/quick", CreatedAt: reportCreatedAt},
		},
	}
	metrics := &model.MetricsConfig{Metrics: []model.MetricDefinition{
		{ID: "m-time", Name: "Execution time", Type: "performance", ImplRef: "metrics.ExecutionTime", Unit: "seconds"},
		{ID: "m-thr", Name: "Throughput", Type: "performance", ImplRef: "test.Throughput", HigherIsBetter: true, Unit: "ops/s"},
	}}
	runs := &model.RunsConfig{Runs: []model.RunDefinition{{
		ID:           "run-sort",
		Name:         "Sorting comparison",
		Description:  "Bubble sort against quicksort on the same input.",
		IterationIDs: []string{"it-bubble", "it-quick"},
		MetricIDs:    []string{"m-time", "m-thr"},
		Status:       model.StatusCompleted,
		CreatedAt:    reportCreatedAt,
	}}}
	results := &model.ResultsConfig{Results: []model.RunResult{
		sortingResult("it-bubble", "m-time", 1.2, 0),
		sortingResult("it-quick", "m-time", 0.5, 1),
		sortingResult("it-bubble", "m-thr", 830, 2),
		sortingResult("it-quick", "m-thr", 1990.5, 3),
	}}
	return iterations, metrics, runs, results
}

func sortingResult(iterID, metricID string, value float64, offset int) model.RunResult {
	return model.RunResult{
		RunID:       "run-sort",
		IterationID: iterID,
		MetricID:    metricID,
		Value:       value,
		ExecutedAt:  reportCreatedAt.Add(time.Duration(offset) * time.Second),
	}
}

func sortingFixture(t *testing.T) string {
	t.Helper()
	iterations, metrics, runs, results := sortingDocs()
	return testutil.ConfigDir(t, iterations, metrics, runs, results)
}

func generate(t *testing.T, dir string) string {
	t.Helper()
	st, err := store.Open(dir)
	require.NoError(t, err)
	doc, err := New(st, WithNow(fixedNow)).Generate()
	require.NoError(t, err)
	return doc
}

func TestGenerateComparison(t *testing.T) {
	doc := generate(t, sortingFixture(t))

	assert.Contains(t, doc, "# Benchmark Comparison Report")
	assert.Contains(t, doc, "Project: Sorting Study")
	assert.Contains(t, doc, "Generated: 2025-06-02T08:30:00Z")
	assert.Contains(t, doc, "## Sorting comparison")
	assert.Contains(t, doc, "| Metric | Bubble sort | Quick sort |")
	assert.Contains(t, doc, "|---|---|---|")
	assert.Contains(t, doc, "| Execution time | 1.2000 | **0.5000** |")
	assert.Contains(t, doc, "| Throughput | 830.0000 | **1990.5000** |")
	assert.Contains(t, doc, "Quick sort achieved the lowest value (0.5000 seconds). Bubble sort differs by 140.0%.")
	assert.Contains(t, doc, "Quick sort achieved the highest value (1990.5000 ops/s). Bubble sort differs by 58.3%.")
}

func TestGenerateLatestResultWins(t *testing.T) {
	iterations, metrics, runs, results := sortingDocs()
	results.Results = append(results.Results, sortingResult("it-quick", "m-time", 0.8, 60))
	dir := testutil.ConfigDir(t, iterations, metrics, runs, results)

	doc := generate(t, dir)

	assert.Contains(t, doc, "| Execution time | 1.2000 | **0.8000** |")
	assert.NotContains(t, doc, "0.5000")
}

func TestGenerateMissingCellRendersNA(t *testing.T) {
	iterations, metrics, runs, results := sortingDocs()
	results.Results = []model.RunResult{
		sortingResult("it-bubble", "m-time", 1.2, 0),
		sortingResult("it-quick", "m-time", 0.5, 1),
		sortingResult("it-quick", "m-thr", 1990.5, 2),
	}
	dir := testutil.ConfigDir(t, iterations, metrics, runs, results)

	doc := generate(t, dir)

	assert.Contains(t, doc, "| Throughput | n/a | **1990.5000** |")
	assert.Contains(t, doc, "- **Throughput**: Quick sort achieved the highest value (1990.5000 ops/s).")
}

func TestGenerateRowWithoutMeasurements(t *testing.T) {
	iterations, metrics, runs, results := sortingDocs()
	results.Results = []model.RunResult{
		sortingResult("it-bubble", "m-time", 1.2, 0),
		sortingResult("it-quick", "m-time", 0.5, 1),
	}
	dir := testutil.ConfigDir(t, iterations, metrics, runs, results)

	doc := generate(t, dir)

	assert.Contains(t, doc, "| Throughput | n/a | n/a |")
	assert.Contains(t, doc, "- **Throughput**: no measurements recorded.")
}

func TestGenerateSkipsNonCompletedRuns(t *testing.T) {
	iterations, metrics, runs, results := sortingDocs()
	runs.Runs[0].Status = model.StatusFailed
	runs.Runs = append(runs.Runs, model.RunDefinition{
		ID:           "run-later",
		Name:         "Not yet executed",
		IterationIDs: []string{"it-bubble"},
		MetricIDs:    []string{"m-time"},
		Status:       model.StatusPending,
		CreatedAt:    reportCreatedAt,
	})
	dir := testutil.ConfigDir(t, iterations, metrics, runs, results)

	doc := generate(t, dir)

	assert.Contains(t, doc, "No completed runs")
	assert.NotContains(t, doc, "## Sorting comparison")
	assert.NotContains(t, doc, "## Not yet executed")
}

func TestGenerateStaleReferenceFallsBackToID(t *testing.T) {
	iterations, metrics, runs, results := sortingDocs()
	runs.Runs[0].IterationIDs = append(runs.Runs[0].IterationIDs, "it-gone")
	dir := testutil.ConfigDir(t, iterations, metrics, runs, results)

	doc := generate(t, dir)

	assert.Contains(t, doc, "| Metric | Bubble sort | Quick sort | it-gone |")
	assert.Contains(t, doc, "| Execution time | 1.2000 | **0.5000** | n/a |")
}

func TestGapAgainstZeroBest(t *testing.T) {
	iterations, metrics, runs, results := sortingDocs()
	results.Results = []model.RunResult{
		sortingResult("it-bubble", "m-time", 5, 0),
		sortingResult("it-quick", "m-time", 0, 1),
		sortingResult("it-bubble", "m-thr", 830, 2),
		sortingResult("it-quick", "m-thr", 1990.5, 3),
	}
	dir := testutil.ConfigDir(t, iterations, metrics, runs, results)

	doc := generate(t, dir)

	assert.Contains(t, doc, "| Execution time | 5.0000 | **0.0000** |")
	assert.Contains(t, doc, "Bubble sort differs by n/a.")
}

func TestWritePersistsReport(t *testing.T) {
	dir := sortingFixture(t)
	st, err := store.Open(dir)
	require.NoError(t, err)

	doc, err := New(st, WithNow(fixedNow)).Write("comparison_report.md")
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "comparison_report.md"))
	require.NoError(t, err)
	assert.Equal(t, doc, string(written))
	assert.Contains(t, string(written), "## Sorting comparison")
}
