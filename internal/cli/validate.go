package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanremacle/benchmark-framework/internal/registry"
	"github.com/jeanremacle/benchmark-framework/internal/schema"
	"github.com/jeanremacle/benchmark-framework/internal/store"
)

// Finding is one validation finding located in a document.
type Finding struct {
	File string `json:"file"`
	schema.ValidationError
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-dir>",
		Short: "Validate the configuration documents",
		Long: `Validate all four configuration documents plus the optional settings file.

Checks JSON syntax, document schemas, per-document semantic rules
(duplicate or non-canonical ids, malformed implementation references),
cross-document references, and whether every metric implementation is
registered. Findings are collected across all documents and reported
together rather than stopping at the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(dir)
	if err != nil {
		var le *store.LoadError
		if errors.As(err, &le) {
			return outputValidateError(formatter, le.Code, le.Message)
		}
		return outputValidateError(formatter, store.ErrCodeDir, err.Error())
	}

	findings := collectFindings(st, registry.NewDefault(), formatter)

	if len(findings) > 0 {
		return outputFindings(formatter, findings)
	}
	return outputValidateSuccess(formatter)
}

// collectFindings loads every document and gathers all findings: schema and
// semantic findings from the store, cross-document reference checks, and
// registry lookups for each metric implementation reference.
func collectFindings(st *store.Store, reg *registry.Registry, formatter *OutputFormatter) []Finding {
	var findings []Finding

	record := func(file string, err error) bool {
		if err == nil {
			return true
		}
		var le *store.LoadError
		if errors.As(err, &le) {
			if len(le.Findings) > 0 {
				for _, f := range le.Findings {
					findings = append(findings, Finding{File: file, ValidationError: f})
				}
				return false
			}
			findings = append(findings, Finding{File: file, ValidationError: schema.ValidationError{
				Message: le.Message,
				Code:    le.Code,
			}})
			return false
		}
		findings = append(findings, Finding{File: file, ValidationError: schema.ValidationError{
			Message: err.Error(),
			Code:    store.ErrCodeRead,
		}})
		return false
	}

	formatter.VerboseLog("Validating %s", store.IterationsFile)
	iterations, err := st.LoadIterations()
	iterOK := record(store.IterationsFile, err)

	formatter.VerboseLog("Validating %s", store.MetricsFile)
	metrics, err := st.LoadMetrics()
	metricsOK := record(store.MetricsFile, err)

	formatter.VerboseLog("Validating %s", store.RunsFile)
	runs, err := st.LoadRuns()
	runsOK := record(store.RunsFile, err)

	formatter.VerboseLog("Validating %s", store.ResultsFile)
	if _, err := st.LoadResults(); err != nil {
		record(store.ResultsFile, err)
	}

	formatter.VerboseLog("Validating %s", store.SettingsFile)
	if _, err := st.LoadSettings(); err != nil {
		record(store.SettingsFile, err)
	}

	if runsOK && iterOK && metricsOK {
		for _, f := range schema.CrossCheckRuns(runs, iterations, metrics) {
			findings = append(findings, Finding{File: store.RunsFile, ValidationError: f})
		}
	}
	if metricsOK {
		for i, def := range metrics.Metrics {
			if reg.Has(def.ImplRef) {
				continue
			}
			findings = append(findings, Finding{File: store.MetricsFile, ValidationError: schema.ValidationError{
				Field:   fmt.Sprintf("metrics[%d].class", i),
				Message: fmt.Sprintf("implementation %q is not registered", def.ImplRef),
				Code:    schema.ErrUnregisteredImpl,
			}})
		}
	}

	return findings
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ Configuration valid")
	return nil
}

// outputValidateError outputs a single directory-level error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Directory-level failures are command errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputFindings outputs the collected findings grouped by document.
func outputFindings(formatter *OutputFormatter, findings []Finding) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: false, Findings: findings}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    findings[0].Code,
				Message: findings[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation findings = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d finding(s)", len(findings)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	current := ""
	for _, f := range findings {
		if f.File != current {
			current = f.File
			fmt.Fprintf(formatter.Writer, "%s:\n", current)
		}
		fmt.Fprintf(formatter.Writer, "  %s\n", f.ValidationError.Error())
	}
	fmt.Fprintln(formatter.Writer)

	// Validation findings = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d finding(s)", len(findings)))
}
