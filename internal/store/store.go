package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeanremacle/benchmark-framework/internal/schema"
)

// Document file names inside a configuration directory.
const (
	IterationsFile = "iterations.json"
	MetricsFile    = "metrics.json"
	RunsFile       = "runs.json"
	ResultsFile    = "results.json"
	SettingsFile   = "bench.yaml"
)

// Load error codes (E001-E007). File-level failures; per-field schema
// findings carry their own codes from internal/schema.
const (
	ErrCodeDir      = "E001" // config directory missing or not a directory
	ErrCodeRead     = "E002" // document unreadable
	ErrCodeParse    = "E003" // malformed JSON
	ErrCodeSchema   = "E004" // document does not conform to the schema
	ErrCodeSemantic = "E005" // semantic validation failure
	ErrCodeWrite    = "E006" // document write failure
	ErrCodeSettings = "E007" // settings file invalid
)

// LoadError is a file-level load or save failure. Findings holds the
// per-field validation errors when Code is ErrCodeSchema or ErrCodeSemantic.
type LoadError struct {
	Code     string
	Path     string
	Message  string
	Findings []schema.ValidationError
	Err      error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
	if len(e.Findings) > 0 {
		parts := make([]string, len(e.Findings))
		for i, f := range e.Findings {
			parts[i] = f.Error()
		}
		msg += ": " + strings.Join(parts, "; ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store reads and writes the documents of one configuration directory.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir. The directory must already exist;
// the store never creates configuration directories.
func Open(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDir, Path: dir, Message: "config directory not accessible", Err: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeDir, Path: dir, Message: "not a directory"}
	}
	return &Store{dir: dir}, nil
}

// Dir returns the configuration directory this store is rooted at.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
