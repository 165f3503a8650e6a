package model

// Version constants for the document schema and the harness.
const (
	// SchemaVersion is the configuration document schema version.
	SchemaVersion = "1"

	// HarnessVersion is the benchmark harness version. It is stamped into
	// the environment snapshot of every result.
	HarnessVersion = "0.1.0"
)
