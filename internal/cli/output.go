package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormatter renders command results as human-readable text or as a
// JSON envelope, depending on the --format flag. Stdout carries results
// only; diagnostics go to ErrWriter so JSON output stays parseable.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope every command emits under --format json.
// Status is "ok" or "error"; exactly one of Data and Error is set.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError carries a coded error inside a CLIResponse. Code reuses the
// document error codes (E001, E110, ...).
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success emits a result. Text mode prints the value's default formatting;
// JSON mode wraps it in an "ok" envelope.
func (f *OutputFormatter) Success(data any) error {
	if f.Format != "json" {
		fmt.Fprintln(f.Writer, data)
		return nil
	}
	return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
}

// Error emits a coded error. Text mode prints a single Error line, with
// details only under --verbose; JSON mode wraps it in an "error" envelope.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format != "json" {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
		if f.Verbose && details != nil {
			fmt.Fprintf(f.Writer, "Details: %v\n", details)
		}
		return nil
	}
	return json.NewEncoder(f.Writer).Encode(CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message, Details: details},
	})
}

// VerboseLog writes a diagnostic line when --verbose is on. It prefers
// ErrWriter so the line never lands in machine-readable output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
