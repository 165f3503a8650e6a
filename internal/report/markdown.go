package report

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const reportTitle = "# Benchmark Comparison Report"

// noCompletedRuns is the notice shown when nothing is comparable yet.
const noCompletedRuns = "No completed runs to compare. Execute pending runs first."

func render(project string, generatedAt time.Time, views []runView) string {
	var b strings.Builder
	b.WriteString(reportTitle + "\n\n")
	if project != "" {
		fmt.Fprintf(&b, "Project: %s\n", project)
	}
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.UTC().Format(time.RFC3339))

	if len(views) == 0 {
		b.WriteString("\n" + noCompletedRuns + "\n")
		return b.String()
	}
	for _, v := range views {
		b.WriteString("\n")
		writeRunSection(&b, v)
	}
	return b.String()
}

func writeRunSection(b *strings.Builder, v runView) {
	fmt.Fprintf(b, "## %s\n\n", v.run.Name)
	if v.run.Description != "" {
		fmt.Fprintf(b, "%s\n\n", v.run.Description)
	}

	b.WriteString("| Metric |")
	for _, c := range v.columns {
		fmt.Fprintf(b, " %s |", c.name)
	}
	b.WriteString("\n|---|")
	for range v.columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, r := range v.rows {
		best := r.bestIndex()
		fmt.Fprintf(b, "| %s |", r.name)
		for i, c := range r.cells {
			switch {
			case !c.ok:
				b.WriteString(" n/a |")
			case i == best:
				fmt.Fprintf(b, " **%.4f** |", c.value)
			default:
				fmt.Fprintf(b, " %.4f |", c.value)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n### Analysis\n\n")
	for _, r := range v.rows {
		b.WriteString(analysisLine(v, r) + "\n")
	}
}

// analysisLine names the winning iteration for one metric and, for every
// other measured iteration, its relative distance from the winner.
func analysisLine(v runView, r row) string {
	best := r.bestIndex()
	if best == -1 {
		return fmt.Sprintf("- **%s**: no measurements recorded.", r.name)
	}

	direction := "lowest"
	if r.higherIsBetter {
		direction = "highest"
	}
	line := fmt.Sprintf("- **%s**: %s achieved the %s value (%s).",
		r.name, v.columns[best].name, direction, formatMeasure(r.cells[best].value, r.unit))

	var gaps []string
	for i, c := range r.cells {
		if i == best || !c.ok {
			continue
		}
		gaps = append(gaps, fmt.Sprintf("%s differs by %s", v.columns[i].name, formatGap(c.value, r.cells[best].value)))
	}
	if len(gaps) > 0 {
		line += " " + strings.Join(gaps, ", ") + "."
	}
	return line
}

// formatMeasure renders a value with its unit, "0.5000 seconds", or bare
// "0.5000" when the metric has no unit.
func formatMeasure(value float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%.4f", value)
	}
	return fmt.Sprintf("%.4f %s", value, unit)
}

// formatGap renders the relative distance from the best value as a
// percentage with one decimal. A zero best value has no meaningful
// percentage and renders as n/a.
func formatGap(value, best float64) string {
	if best == 0 {
		return "n/a"
	}
	gap := math.Abs(value-best) / math.Abs(best) * 100
	return fmt.Sprintf("%.1f%%", gap)
}
