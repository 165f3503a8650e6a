package model

import "time"

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	StatusPending   RunStatus = "pending"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// KnownStatuses lists every valid run status, in lifecycle order.
var KnownStatuses = []RunStatus{StatusPending, StatusRunning, StatusCompleted, StatusFailed}

// IsValid reports whether s is one of the known statuses.
func (s RunStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s is an end state. A terminal run is never
// executed again implicitly; re-executing it is an explicit request and
// appends to existing results.
func (s RunStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Iteration describes one variant of the system under measurement: where its
// source lives and how to invoke it.
//
// Parent records which iteration this one was derived from. Lineage is
// advisory metadata for humans and reports; it is never validated as a DAG
// and a dangling parent id is not an error.
type Iteration struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Approach    string         `json:"approach"`
	SourcePath  string         `json:"source_path"`
	EntryPoint  string         `json:"entry_point,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Parent      string         `json:"parent,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	Tags        []string       `json:"tags,omitempty"`
}

// DefaultEntryPoint is used when an iteration does not name one.
const DefaultEntryPoint = "main.py"

// MetricDefinition describes a measurable quantity and names the
// implementation that produces it.
//
// ImplRef is serialized under the "class" key. It is an opaque dotted
// identifier resolved through the metric registry; it is never interpreted
// as a loadable code path.
type MetricDefinition struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Type           string `json:"type"`
	ImplRef        string `json:"class"`
	HigherIsBetter bool   `json:"higher_is_better"`
	Unit           string `json:"unit,omitempty"`
}

// RunDefinition pairs iterations with metrics. IterationIDs and MetricIDs
// are ordered: their order is both execution order and report order.
type RunDefinition struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	IterationIDs []string  `json:"iteration_ids"`
	MetricIDs    []string  `json:"metric_ids"`
	Status       RunStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// RunResult is one measurement record. ExecutedAt is UTC. Environment is a
// snapshot of the host the measurement ran on; Metadata is whatever the
// metric implementation chose to attach.
type RunResult struct {
	RunID       string            `json:"run_id"`
	IterationID string            `json:"iteration_id"`
	MetricID    string            `json:"metric_id"`
	Value       float64           `json:"value"`
	Unit        string            `json:"unit,omitempty"`
	ExecutedAt  time.Time         `json:"executed_at"`
	Environment map[string]string `json:"environment,omitempty"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
}

// IterationsConfig is the iterations.json document.
type IterationsConfig struct {
	Project    string      `json:"project,omitempty"`
	Iterations []Iteration `json:"iterations"`
}

// MetricsConfig is the metrics.json document.
type MetricsConfig struct {
	Metrics []MetricDefinition `json:"metrics"`
}

// RunsConfig is the runs.json document.
type RunsConfig struct {
	Runs []RunDefinition `json:"runs"`
}

// ResultsConfig is the results.json document.
type ResultsConfig struct {
	Results []RunResult `json:"results"`
}

// SetDefaults fills zero values that the interchange treats as optional.
func (c *IterationsConfig) SetDefaults() {
	if c.Iterations == nil {
		c.Iterations = []Iteration{}
	}
	for i := range c.Iterations {
		if c.Iterations[i].EntryPoint == "" {
			c.Iterations[i].EntryPoint = DefaultEntryPoint
		}
	}
}

// SetDefaults fills zero values that the interchange treats as optional.
func (c *MetricsConfig) SetDefaults() {
	if c.Metrics == nil {
		c.Metrics = []MetricDefinition{}
	}
}

// SetDefaults fills zero values that the interchange treats as optional.
// A run with no status is pending.
func (c *RunsConfig) SetDefaults() {
	if c.Runs == nil {
		c.Runs = []RunDefinition{}
	}
	for i := range c.Runs {
		if c.Runs[i].Status == "" {
			c.Runs[i].Status = StatusPending
		}
	}
}

// SetDefaults guarantees a non-nil record list so an empty document
// serializes as {"results": []} rather than {"results": null}.
func (c *ResultsConfig) SetDefaults() {
	if c.Results == nil {
		c.Results = []RunResult{}
	}
}

// ByID returns the iteration with the given id.
func (c *IterationsConfig) ByID(id string) (Iteration, bool) {
	for _, it := range c.Iterations {
		if it.ID == id {
			return it, true
		}
	}
	return Iteration{}, false
}

// ByID returns the metric definition with the given id.
func (c *MetricsConfig) ByID(id string) (MetricDefinition, bool) {
	for _, m := range c.Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return MetricDefinition{}, false
}

// Find returns a pointer into the run list so callers can update status in
// place before persisting the document.
func (c *RunsConfig) Find(id string) (*RunDefinition, bool) {
	for i := range c.Runs {
		if c.Runs[i].ID == id {
			return &c.Runs[i], true
		}
	}
	return nil, false
}

// Pending returns the ids of runs whose status is pending, in document order.
func (c *RunsConfig) Pending() []string {
	var ids []string
	for _, r := range c.Runs {
		if r.Status == StatusPending {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// ForRun returns all results recorded for the given run id, in append order.
func (c *ResultsConfig) ForRun(runID string) []RunResult {
	var out []RunResult
	for _, r := range c.Results {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	return out
}
