// Package report turns recorded results into a Markdown comparison.
//
// Reporting is read-only over the configuration directory: only completed
// runs are compared, a stale reference degrades to its id instead of
// failing, and when re-executions left several records for the same
// (run, iteration, metric) cell the one with the latest executed_at wins.
package report

import (
	"time"

	"github.com/jeanremacle/benchmark-framework/internal/store"
)

// Reporter renders the comparison for one configuration directory.
type Reporter struct {
	store *store.Store
	now   func() time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithNow overrides the generation timestamp source. Tests use this to
// keep golden output stable.
func WithNow(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// New creates a Reporter over st.
func New(st *store.Store, opts ...Option) *Reporter {
	r := &Reporter{store: st, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generate loads the four documents and renders the comparison document.
func (r *Reporter) Generate() (string, error) {
	iterations, err := r.store.LoadIterations()
	if err != nil {
		return "", err
	}
	metrics, err := r.store.LoadMetrics()
	if err != nil {
		return "", err
	}
	runs, err := r.store.LoadRuns()
	if err != nil {
		return "", err
	}
	results, err := r.store.LoadResults()
	if err != nil {
		return "", err
	}
	views := buildViews(iterations, metrics, runs, results)
	return render(iterations.Project, r.now(), views), nil
}

// Write renders the comparison and persists it under filename inside the
// configuration directory. It returns the rendered document so callers can
// print it without generating twice.
func (r *Reporter) Write(filename string) (string, error) {
	doc, err := r.Generate()
	if err != nil {
		return "", err
	}
	if err := r.store.WriteFile(filename, []byte(doc)); err != nil {
		return "", err
	}
	return doc, nil
}
