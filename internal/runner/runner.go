// Package runner executes benchmark runs and persists what they measure.
//
// Execution is strictly sequential: a run walks its iterations in list
// order and, inside each iteration, its metrics in list order. Each
// (iteration, metric) pair yields one result row. Results are appended to
// results.json and the run status is written back to runs.json once
// execution settles, whether it completed or failed. The transient running
// status exists only in memory, so a crash mid-run leaves the documents in
// their previous state rather than stuck at running.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jeanremacle/benchmark-framework/internal/metric"
	"github.com/jeanremacle/benchmark-framework/internal/model"
	"github.com/jeanremacle/benchmark-framework/internal/registry"
	"github.com/jeanremacle/benchmark-framework/internal/store"
)

// Runner executes runs against one configuration directory.
//
// The three definition documents are loaded once at construction and held
// in memory; results.json is never read by the Runner, only appended to.
//
// Thread-safety model: a Runner is single-threaded. ExecuteRun mutates the
// in-memory run list and must not be called concurrently.
type Runner struct {
	store    *store.Store
	registry *registry.Registry
	settings store.Settings
	clock    Clock
	ids      IDGenerator
	logger   *slog.Logger

	iterations *model.IterationsConfig
	metrics    *model.MetricsConfig
	runs       *model.RunsConfig
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the wall clock used for executed_at stamps.
// Tests use this to produce deterministic timestamps.
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithIDGenerator overrides the execution id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Runner) { r.ids = g }
}

// WithLogger sets the logger for execution progress and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New loads iterations.json, metrics.json, runs.json, and the optional
// settings file from st and returns a Runner bound to them. Any document
// that is missing or fails validation surfaces as a *store.LoadError.
func New(st *store.Store, reg *registry.Registry, opts ...Option) (*Runner, error) {
	r := &Runner{
		store:    st,
		registry: reg,
		clock:    SystemClock{},
		ids:      UUIDv7Generator{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	if r.iterations, err = st.LoadIterations(); err != nil {
		return nil, err
	}
	if r.metrics, err = st.LoadMetrics(); err != nil {
		return nil, err
	}
	if r.runs, err = st.LoadRuns(); err != nil {
		return nil, err
	}
	if r.settings, err = st.LoadSettings(); err != nil {
		return nil, err
	}
	return r, nil
}

// Pending returns the ids of runs whose status is pending, in document order.
func (r *Runner) Pending() []string {
	return r.runs.Pending()
}

// Run returns the definition of the run with the given id.
func (r *Runner) Run(id string) (model.RunDefinition, bool) {
	run, ok := r.runs.Find(id)
	if !ok {
		return model.RunDefinition{}, false
	}
	return *run, true
}

// ExecuteRun executes one run end to end and returns the results it measured.
//
// Every iteration and metric the run references is resolved before the
// first measurement, so a bad id fails the run before any subprocess is
// spawned. The first hook failure stops execution: the run is marked
// failed, everything measured so far is appended to results.json, and a
// MEASUREMENT_FAILED error is returned.
//
// Re-executing a completed run is allowed and appends a fresh batch of
// results; a warning is logged. Each call mints one execution id and stamps
// it into the metadata of every result it appends.
func (r *Runner) ExecuteRun(ctx context.Context, runID string) ([]model.RunResult, error) {
	run, ok := r.runs.Find(runID)
	if !ok {
		return nil, newRunError(ErrCodeRunNotFound, runID, "no run with this id in %s", store.RunsFile)
	}
	if run.Status == model.StatusCompleted {
		r.logger.Warn("run already completed, executing again", "run_id", runID)
	}

	iterations := make([]model.Iteration, 0, len(run.IterationIDs))
	for _, id := range run.IterationIDs {
		it, ok := r.iterations.ByID(id)
		if !ok {
			return nil, newRunError(ErrCodeUnknownIteration, runID, "iteration %q not defined in %s", id, store.IterationsFile)
		}
		iterations = append(iterations, it)
	}
	defs := make([]model.MetricDefinition, 0, len(run.MetricIDs))
	for _, id := range run.MetricIDs {
		def, ok := r.metrics.ByID(id)
		if !ok {
			return nil, newRunError(ErrCodeUnknownMetric, runID, "metric %q not defined in %s", id, store.MetricsFile)
		}
		defs = append(defs, def)
	}

	execID := r.ids.Generate()
	env := Environment()
	run.Status = model.StatusRunning
	r.logger.Info("executing run", "run_id", runID, "name", run.Name, "execution_id", execID)

	results := make([]model.RunResult, 0, len(iterations)*len(defs))
	var execErr error

measure:
	for _, it := range iterations {
		for _, def := range defs {
			if ctxErr := ctx.Err(); ctxErr != nil {
				e := newRunError(ErrCodeMeasurementFailed, runID, "canceled before iteration %q, metric %q", it.ID, def.ID)
				e.Err = ctxErr
				execErr = e
				break measure
			}
			res, err := r.measure(ctx, runID, it, def, execID, env)
			if err != nil {
				e := newRunError(ErrCodeMeasurementFailed, runID, "iteration %q, metric %q", it.ID, def.ID)
				e.Err = err
				execErr = e
				break measure
			}
			results = append(results, res)
		}
	}

	if execErr != nil {
		run.Status = model.StatusFailed
		r.logger.Error("run failed", "run_id", runID, "results_kept", len(results), "error", execErr)
	} else {
		run.Status = model.StatusCompleted
		r.logger.Info("run completed", "run_id", runID, "measurements", len(results))
	}

	// Persist regardless of how execution went. A failed run keeps the
	// measurements taken before the failure.
	persistErr := r.persist(runID, results)

	if execErr != nil {
		if persistErr != nil {
			r.logger.Error("persisting after failed run", "run_id", runID, "error", persistErr)
		}
		return nil, execErr
	}
	if persistErr != nil {
		return nil, persistErr
	}
	return results, nil
}

// measure takes one measurement: build the implementation, run its hooks,
// and wrap the raw value into a result row. Teardown always runs, even
// after a failed measurement; a measurement failure takes precedence over
// a teardown failure.
func (r *Runner) measure(ctx context.Context, runID string, it model.Iteration, def model.MetricDefinition, execID string, env map[string]string) (model.RunResult, error) {
	impl, err := r.registry.Build(def)
	if err != nil {
		return model.RunResult{}, err
	}
	impl = metric.WithTiming(impl)

	target := metric.Target{
		Dir:          r.iterationDir(it),
		EntryPoint:   it.EntryPoint,
		Parameters:   it.Parameters,
		Interpreters: r.settings.Interpreters,
	}

	if err := impl.Setup(ctx, target); err != nil {
		return model.RunResult{}, fmt.Errorf("setup for metric %q: %w", def.ID, err)
	}

	res, measureErr := impl.Measure(ctx, target)

	if err := impl.Teardown(ctx, target); err != nil {
		if measureErr == nil {
			return model.RunResult{}, fmt.Errorf("teardown for metric %q: %w", def.ID, err)
		}
		r.logger.Warn("teardown failed after measurement error", "run_id", runID, "metric_id", def.ID, "error", err)
	}
	if measureErr != nil {
		return model.RunResult{}, measureErr
	}

	metadata := res.Metadata
	if metadata == nil {
		metadata = make(map[string]any, 1)
	}
	metadata["execution_id"] = execID

	return model.RunResult{
		RunID:       runID,
		IterationID: it.ID,
		MetricID:    def.ID,
		Value:       res.Value,
		Unit:        res.Unit,
		ExecutedAt:  r.clock.Now().UTC(),
		Environment: env,
		Metadata:    metadata,
	}, nil
}

// persist appends the measured results and writes the settled run status
// back. SaveResults runs even with zero rows so results.json exists after
// the first execution.
func (r *Runner) persist(runID string, results []model.RunResult) error {
	if err := r.store.SaveResults(results); err != nil {
		e := newRunError(ErrCodePersistFailed, runID, "appending results")
		e.Err = err
		return e
	}
	if err := r.store.SaveRuns(r.runs); err != nil {
		e := newRunError(ErrCodePersistFailed, runID, "writing run status")
		e.Err = err
		return e
	}
	return nil
}

// iterationDir resolves an iteration's source path. Relative paths are
// anchored at the configuration directory so a checked-out config dir can
// be executed from any working directory.
func (r *Runner) iterationDir(it model.Iteration) string {
	if filepath.IsAbs(it.SourcePath) {
		return it.SourcePath
	}
	return filepath.Join(r.store.Dir(), it.SourcePath)
}
