package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions carries the global flags; every subcommand constructor
// receives the same instance so persistent flags reach them after parse.
type RootOptions struct {
	Verbose bool
	Format  string
}

// NewRootCommand builds the bench command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark orchestration harness",
		Long: `A harness for comparing implementation iterations against shared metrics.

A configuration directory holds four JSON documents: iterations.json (the
variants under measurement), metrics.json (what to measure), runs.json
(which iterations to measure with which metrics), and results.json (the
append-only measurement log). The harness executes runs, records results,
and renders a Markdown comparison report.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Format {
			case "text", "json":
			default:
				return fmt.Errorf("invalid format %q: must be one of [text json]", opts.Format)
			}
			configureLogging(cmd, opts)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// configureLogging points slog at the command's stderr. Debug level under
// --verbose, info otherwise. Logs never go to stdout, which belongs to
// command output (and must stay clean for JSON format).
func configureLogging(cmd *cobra.Command, opts *RootOptions) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
