package store

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are optional harness settings read from bench.yaml in the
// configuration directory. Every field has a default; an absent file means
// all defaults.
type Settings struct {
	// Interpreters maps an entry-point file extension (including the dot)
	// to the command that runs it. Entry points with no mapped extension
	// are executed directly.
	Interpreters map[string]string `yaml:"interpreters"`

	// ReportFilename is the name of the generated comparison report inside
	// the configuration directory.
	ReportFilename string `yaml:"report_filename"`
}

// DefaultSettings returns the settings used when bench.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		Interpreters: map[string]string{
			".py": "python3",
			".sh": "sh",
		},
		ReportFilename: "comparison_report.md",
	}
}

// LoadSettings reads bench.yaml with strict decoding: unknown keys are an
// error, keys present in the file override defaults, interpreter entries
// merge over the default table per extension.
func (s *Store) LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	f, err := os.Open(s.path(SettingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, &LoadError{Code: ErrCodeSettings, Path: s.path(SettingsFile), Message: "cannot read settings", Err: err}
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	var file Settings
	if err := decoder.Decode(&file); err != nil {
		// An empty settings file decodes to EOF; that is just defaults.
		if errors.Is(err, io.EOF) {
			return settings, nil
		}
		return settings, &LoadError{Code: ErrCodeSettings, Path: s.path(SettingsFile), Message: "parsing settings", Err: err}
	}

	for ext, cmd := range file.Interpreters {
		settings.Interpreters[ext] = cmd
	}
	if file.ReportFilename != "" {
		settings.ReportFilename = file.ReportFilename
	}
	return settings, nil
}
