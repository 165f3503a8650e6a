package store

import (
	"encoding/json"
	"os"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

// SaveResults appends records to results.json. The existing document is
// loaded and validated first (a missing file starts an empty one), the new
// records are appended, and the whole document is written back. Existing
// records are never modified.
func (s *Store) SaveResults(records []model.RunResult) error {
	existing, err := s.LoadResults()
	if err != nil {
		return err
	}
	existing.Results = append(existing.Results, records...)
	return s.writeDocument(ResultsFile, existing)
}

// SaveRuns rewrites runs.json with the given document. Callers mutate run
// statuses in place (see model.RunsConfig.Find) and persist the whole
// document here.
func (s *Store) SaveRuns(cfg *model.RunsConfig) error {
	return s.writeDocument(RunsFile, cfg)
}

// writeDocument serializes doc and writes it to name atomically: temp file
// in the same directory, fsync, rename over the target. Rename within one
// directory is atomic on POSIX systems, so a crash mid-write never leaves
// a torn document behind.
func (s *Store) writeDocument(name string, doc any) error {
	path := s.path(name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &LoadError{Code: ErrCodeWrite, Path: path, Message: "encoding document", Err: err}
	}
	data = append(data, '\n')

	return s.writeFileAtomic(path, data)
}

// WriteFile writes raw bytes to a file inside the configuration directory
// using the same atomic temp-and-rename path as document writes. Used for
// the generated report.
func (s *Store) WriteFile(name string, data []byte) error {
	return s.writeFileAtomic(s.path(name), data)
}

func (s *Store) writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return &LoadError{Code: ErrCodeWrite, Path: path, Message: "creating temp file", Err: err}
	}
	tmpName := tmp.Name()

	// On any failure below, the temp file must not linger.
	cleanup := func(stage string, cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &LoadError{Code: ErrCodeWrite, Path: path, Message: stage, Err: cause}
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup("writing temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &LoadError{Code: ErrCodeWrite, Path: path, Message: "closing temp file", Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &LoadError{Code: ErrCodeWrite, Path: path, Message: "setting permissions", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &LoadError{Code: ErrCodeWrite, Path: path, Message: "renaming into place", Err: err}
	}
	return nil
}
