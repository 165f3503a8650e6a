package report

import (
	"time"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

// cell is the value shown for one (iteration, metric) pair. When a run was
// executed more than once the record with the latest executed_at wins.
type cell struct {
	value      float64
	executedAt time.Time
	ok         bool
}

// column is one table column: an iteration reference resolved to a display
// name. A reference to an iteration that no longer exists keeps the id as
// its name; reporting never fails on a stale reference.
type column struct {
	id   string
	name string
}

// row is one table row: a metric reference plus its cells in column order.
type row struct {
	id             string
	name           string
	unit           string
	higherIsBetter bool
	cells          []cell
}

// runView is everything one run section needs, resolved and ordered: the
// run's iterations as columns and its metrics as rows, both in the order
// the run declares them.
type runView struct {
	run     model.RunDefinition
	columns []column
	rows    []row
}

// buildViews assembles one view per completed run, in document order.
func buildViews(iterations *model.IterationsConfig, metrics *model.MetricsConfig, runs *model.RunsConfig, results *model.ResultsConfig) []runView {
	var views []runView
	for _, run := range runs.Runs {
		if run.Status != model.StatusCompleted {
			continue
		}
		views = append(views, buildView(run, iterations, metrics, results))
	}
	return views
}

func buildView(run model.RunDefinition, iterations *model.IterationsConfig, metrics *model.MetricsConfig, results *model.ResultsConfig) runView {
	v := runView{run: run}
	for _, id := range run.IterationIDs {
		name := id
		if it, ok := iterations.ByID(id); ok {
			name = it.Name
		}
		v.columns = append(v.columns, column{id: id, name: name})
	}
	for _, id := range run.MetricIDs {
		r := row{id: id, name: id, cells: make([]cell, len(v.columns))}
		if def, ok := metrics.ByID(id); ok {
			r.name = def.Name
			r.unit = def.Unit
			r.higherIsBetter = def.HigherIsBetter
		}
		v.rows = append(v.rows, r)
	}

	colIdx := make(map[string]int, len(v.columns))
	for i, c := range v.columns {
		colIdx[c.id] = i
	}
	rowIdx := make(map[string]int, len(v.rows))
	for i, r := range v.rows {
		rowIdx[r.id] = i
	}

	for _, rec := range results.ForRun(run.ID) {
		ri, ok := rowIdx[rec.MetricID]
		if !ok {
			continue
		}
		ci, ok := colIdx[rec.IterationID]
		if !ok {
			continue
		}
		c := &v.rows[ri].cells[ci]
		if !c.ok || rec.ExecutedAt.After(c.executedAt) {
			*c = cell{value: rec.Value, executedAt: rec.ExecutedAt, ok: true}
		}
	}
	return v
}

// bestIndex returns the winning column index for a row, or -1 when no cell
// has a value. Missing cells never win; ties go to the first column.
func (r row) bestIndex() int {
	best := -1
	for i, c := range r.cells {
		if !c.ok {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		if r.higherIsBetter {
			if c.value > r.cells[best].value {
				best = i
			}
		} else if c.value < r.cells[best].value {
			best = i
		}
	}
	return best
}
