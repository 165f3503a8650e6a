package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	settings, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "comparison_report.md", settings.ReportFilename)
	assert.Equal(t, "python3", settings.Interpreters[".py"])
	assert.Equal(t, "sh", settings.Interpreters[".sh"])
}

func TestLoadSettings_OverridesMergeOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, SettingsFile, "report_filename: report.md\ninterpreters:\n  \".py\": python3.12\n  \".js\": node\n")
	s, err := Open(dir)
	require.NoError(t, err)

	settings, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "report.md", settings.ReportFilename)
	assert.Equal(t, "python3.12", settings.Interpreters[".py"], "file entry overrides default")
	assert.Equal(t, "node", settings.Interpreters[".js"], "new entry added")
	assert.Equal(t, "sh", settings.Interpreters[".sh"], "untouched default survives")
}

func TestLoadSettings_UnknownKeyRejected(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, SettingsFile, "report_filename: report.md\nparallelism: 4\n")
	s, err := Open(dir)
	require.NoError(t, err)

	_, err = s.LoadSettings()
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeSettings, le.Code)
}

func TestLoadSettings_EmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, SettingsFile, "")
	s, err := Open(dir)
	require.NoError(t, err)

	settings, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "comparison_report.md", settings.ReportFilename)
}
