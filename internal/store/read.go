package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/jeanremacle/benchmark-framework/internal/model"
	"github.com/jeanremacle/benchmark-framework/internal/schema"
)

// LoadIterations loads and validates iterations.json.
func (s *Store) LoadIterations() (*model.IterationsConfig, error) {
	var cfg model.IterationsConfig
	if err := s.readDocument(IterationsFile, schema.KindIterations, &cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if findings := schema.ValidateIterations(&cfg); len(findings) > 0 {
		return nil, &LoadError{Code: ErrCodeSemantic, Path: s.path(IterationsFile), Message: "document failed validation", Findings: findings}
	}
	return &cfg, nil
}

// LoadMetrics loads and validates metrics.json.
func (s *Store) LoadMetrics() (*model.MetricsConfig, error) {
	var cfg model.MetricsConfig
	if err := s.readDocument(MetricsFile, schema.KindMetrics, &cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if findings := schema.ValidateMetrics(&cfg); len(findings) > 0 {
		return nil, &LoadError{Code: ErrCodeSemantic, Path: s.path(MetricsFile), Message: "document failed validation", Findings: findings}
	}
	return &cfg, nil
}

// LoadRuns loads and validates runs.json.
func (s *Store) LoadRuns() (*model.RunsConfig, error) {
	var cfg model.RunsConfig
	if err := s.readDocument(RunsFile, schema.KindRuns, &cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if findings := schema.ValidateRuns(&cfg); len(findings) > 0 {
		return nil, &LoadError{Code: ErrCodeSemantic, Path: s.path(RunsFile), Message: "document failed validation", Findings: findings}
	}
	return &cfg, nil
}

// LoadResults loads and validates results.json. A missing file is not an
// error: a directory that has never recorded a measurement reads as an
// empty, valid document.
func (s *Store) LoadResults() (*model.ResultsConfig, error) {
	var cfg model.ResultsConfig
	if err := s.readDocument(ResultsFile, schema.KindResults, &cfg); err != nil {
		var le *LoadError
		if errors.As(err, &le) && le.Code == ErrCodeRead && errors.Is(le.Err, fs.ErrNotExist) {
			cfg.SetDefaults()
			return &cfg, nil
		}
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}

// readDocument reads one document file, checks JSON syntax, validates the
// raw bytes against the document schema, then decodes into out. Schema
// validation runs on the raw bytes so type mismatches surface as schema
// findings rather than decode errors.
func (s *Store) readDocument(name string, kind schema.Kind, out any) error {
	path := s.path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Code: ErrCodeRead, Path: path, Message: "cannot read document", Err: err}
	}

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return &LoadError{Code: ErrCodeParse, Path: path, Message: "invalid JSON", Err: err}
	}

	if findings := schema.ValidateBytes(kind, data); len(findings) > 0 {
		return &LoadError{Code: ErrCodeSchema, Path: path, Message: "document does not conform to schema", Findings: findings}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &LoadError{Code: ErrCodeParse, Path: path, Message: "decoding document", Err: err}
	}
	return nil
}
