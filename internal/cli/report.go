package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeanremacle/benchmark-framework/internal/report"
	"github.com/jeanremacle/benchmark-framework/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Output string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report <config-dir>",
		Short: "Generate the Markdown comparison report",
		Long: `Generate the comparison report from recorded results without executing
anything. Only completed runs are compared.

By default the report is written inside the configuration directory under
the configured report filename and printed to stdout. --output redirects
the file destination; "-" prints without writing.

Example:
  bench report ./examples/demo
  bench report --output /tmp/comparison.md ./examples/demo
  bench report --output - ./examples/demo`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", `report destination ("-" for stdout only)`)

	return cmd
}

func runReport(opts *ReportOptions, dir string, cmd *cobra.Command) error {
	st, err := store.Open(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening configuration directory", err)
	}

	rep := report.New(st)
	out := cmd.OutOrStdout()

	switch opts.Output {
	case "-":
		doc, err := rep.Generate()
		if err != nil {
			return WrapExitError(ExitCommandError, "generating report", err)
		}
		fmt.Fprint(out, doc)

	case "":
		settings, err := st.LoadSettings()
		if err != nil {
			return WrapExitError(ExitCommandError, "loading settings", err)
		}
		doc, err := rep.Write(settings.ReportFilename)
		if err != nil {
			return WrapExitError(ExitCommandError, "generating report", err)
		}
		fmt.Fprintf(out, "Report written to %s\n\n", filepath.Join(dir, settings.ReportFilename))
		fmt.Fprint(out, doc)

	default:
		doc, err := rep.Generate()
		if err != nil {
			return WrapExitError(ExitCommandError, "generating report", err)
		}
		if err := os.WriteFile(opts.Output, []byte(doc), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "writing report", err)
		}
		fmt.Fprintf(out, "Report written to %s\n\n", opts.Output)
		fmt.Fprint(out, doc)
	}

	return nil
}
