package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeanremacle/benchmark-framework/internal/registry"
	"github.com/jeanremacle/benchmark-framework/internal/report"
	"github.com/jeanremacle/benchmark-framework/internal/runner"
	"github.com/jeanremacle/benchmark-framework/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	RunID string

	// Registry allows overriding the metric registry (for testing).
	// If nil, defaults to the built-in registry.
	Registry *registry.Registry

	// Clock and IDGenerator allow deterministic execution (for testing).
	Clock       runner.Clock
	IDGenerator runner.IDGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <config-dir>",
		Short: "Execute pending runs and write the comparison report",
		Long: `Execute benchmark runs from a configuration directory.

Pending runs execute in runs.json order; each run measures every one of its
metrics against every one of its iterations, in list order. Results are
appended to results.json, run statuses are written back to runs.json, and
the Markdown comparison report is regenerated afterwards.

Example:
  bench run ./examples/demo
  bench run --run run-001 ./examples/demo`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmarks(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "execute only this run id, whatever its status")

	return cmd
}

func runBenchmarks(opts *RunOptions, dir string, cmd *cobra.Command) error {
	st, err := store.Open(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening configuration directory", err)
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.NewDefault()
	}

	runnerOpts := []runner.Option{runner.WithLogger(slog.Default())}
	if opts.Clock != nil {
		runnerOpts = append(runnerOpts, runner.WithClock(opts.Clock))
	}
	if opts.IDGenerator != nil {
		runnerOpts = append(runnerOpts, runner.WithIDGenerator(opts.IDGenerator))
	}

	r, err := runner.New(st, reg, runnerOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading configuration", err)
	}

	// Cancel in-flight measurements on Ctrl-C. The affected run settles as
	// failed with its partial results persisted before the command returns.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, canceling execution", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	out := cmd.OutOrStdout()

	var ids []string
	if opts.RunID != "" {
		ids = []string{opts.RunID}
	} else {
		ids = r.Pending()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No pending runs found.")
		}
	}

	for _, id := range ids {
		name := id
		if run, ok := r.Run(id); ok {
			name = run.Name
		}
		fmt.Fprintf(out, "Executing run: %s (%s)\n", name, id)

		results, err := r.ExecuteRun(ctx, id)
		if err != nil {
			return WrapExitError(ExitFailure, "run execution failed", err)
		}
		fmt.Fprintf(out, "  Completed: %d measurements\n", len(results))
	}

	// The report regenerates even when nothing executed, so the document
	// always reflects the current results.
	settings, err := st.LoadSettings()
	if err != nil {
		return WrapExitError(ExitCommandError, "loading settings", err)
	}
	doc, err := report.New(st).Write(settings.ReportFilename)
	if err != nil {
		return WrapExitError(ExitFailure, "generating report", err)
	}

	fmt.Fprintf(out, "\nReport written to %s\n\n", filepath.Join(dir, settings.ReportFilename))
	fmt.Fprint(out, doc)
	return nil
}
