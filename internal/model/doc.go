// Package model defines the document and record types exchanged through a
// benchmark configuration directory.
//
// This package contains type definitions only. All other internal packages
// import model; model imports nothing internal. Validation lives in
// internal/schema, persistence in internal/store.
//
// On-disk JSON field names are part of the interchange contract:
//   - All JSON tags use snake_case
//   - MetricDefinition's implementation reference uses the "class" key
//   - Timestamps are RFC 3339 strings
//   - Results are append-only records; nothing rewrites or deletes them
package model
