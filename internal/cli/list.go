package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanremacle/benchmark-framework/internal/model"
	"github.com/jeanremacle/benchmark-framework/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Kind string
}

// ListResult holds the documents selected for listing.
type ListResult struct {
	Iterations []model.Iteration        `json:"iterations,omitempty"`
	Metrics    []model.MetricDefinition `json:"metrics,omitempty"`
	Runs       []model.RunDefinition    `json:"runs,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <config-dir>",
		Short: "List iterations, metrics, and runs",
		Long: `List the contents of a configuration directory: the iterations under
measurement, the metric definitions, and the runs with their statuses.

Example:
  bench list ./examples/demo
  bench list --kind runs ./examples/demo`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "all", "which document to list (all|iterations|metrics|runs)")

	return cmd
}

func runList(opts *ListOptions, dir string, cmd *cobra.Command) error {
	switch opts.Kind {
	case "all", "iterations", "metrics", "runs":
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid kind %q: must be one of [all iterations metrics runs]", opts.Kind))
	}

	st, err := store.Open(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening configuration directory", err)
	}

	var result ListResult
	if opts.Kind == "all" || opts.Kind == "iterations" {
		cfg, err := st.LoadIterations()
		if err != nil {
			return WrapExitError(ExitCommandError, "loading iterations", err)
		}
		result.Iterations = cfg.Iterations
	}
	if opts.Kind == "all" || opts.Kind == "metrics" {
		cfg, err := st.LoadMetrics()
		if err != nil {
			return WrapExitError(ExitCommandError, "loading metrics", err)
		}
		result.Metrics = cfg.Metrics
	}
	if opts.Kind == "all" || opts.Kind == "runs" {
		cfg, err := st.LoadRuns()
		if err != nil {
			return WrapExitError(ExitCommandError, "loading runs", err)
		}
		result.Runs = cfg.Runs
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	if opts.Kind == "all" || opts.Kind == "iterations" {
		fmt.Fprintln(w, "=== Iterations ===")
		if len(result.Iterations) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, it := range result.Iterations {
			fmt.Fprintf(w, "  %-14s %s (%s)\n", it.ID, it.Name, it.Approach)
		}
		fmt.Fprintln(w)
	}
	if opts.Kind == "all" || opts.Kind == "metrics" {
		fmt.Fprintln(w, "=== Metrics ===")
		if len(result.Metrics) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, m := range result.Metrics {
			fmt.Fprintf(w, "  %-14s %s class=%s %s\n", m.ID, m.Name, m.ImplRef, direction(m.HigherIsBetter))
		}
		fmt.Fprintln(w)
	}
	if opts.Kind == "all" || opts.Kind == "runs" {
		fmt.Fprintln(w, "=== Runs ===")
		if len(result.Runs) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, r := range result.Runs {
			fmt.Fprintf(w, "  %-14s %s [%s] %d iterations, %d metrics\n",
				r.ID, r.Name, r.Status, len(r.IterationIDs), len(r.MetricIDs))
		}
		fmt.Fprintln(w)
	}

	return nil
}

func direction(higherIsBetter bool) string {
	if higherIsBetter {
		return "higher-is-better"
	}
	return "lower-is-better"
}
