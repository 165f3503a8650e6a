// Package testutil provides deterministic clocks, id generators, and
// configuration-directory fixtures shared by tests across packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

// ConfigDir builds a configuration directory under t.TempDir() from typed
// documents. Pass nil for results to omit results.json, which the store
// treats as an empty results set.
func ConfigDir(t *testing.T, iterations *model.IterationsConfig, metrics *model.MetricsConfig, runs *model.RunsConfig, results *model.ResultsConfig) string {
	t.Helper()
	dir := t.TempDir()
	WriteDocument(t, dir, "iterations.json", iterations)
	WriteDocument(t, dir, "metrics.json", metrics)
	WriteDocument(t, dir, "runs.json", runs)
	if results != nil {
		WriteDocument(t, dir, "results.json", results)
	}
	return dir
}

// WriteDocument marshals doc as indented JSON and writes it as name inside
// dir.
func WriteDocument(t *testing.T, dir, name string, doc any) {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

// WriteScript creates an iteration source directory under dir and drops an
// executable shell script into it as name. It returns the directory path
// relative to dir, suitable for an iteration's source_path.
func WriteScript(t *testing.T, dir, sub, name, body string) string {
	t.Helper()
	src := filepath.Join(dir, sub)
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte(body), 0o755))
	return sub
}
