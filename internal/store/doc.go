// Package store persists the four JSON documents of a benchmark
// configuration directory.
//
// The store implements whole-document persistence with:
//   - iterations.json, metrics.json, runs.json: loaded and fully validated
//   - results.json: append-only record log; a missing file reads as empty
//   - atomic writes: temp file + fsync + rename, never a torn document
//   - optional bench.yaml harness settings (strict YAML decode)
//
// Every load validates against internal/schema before a document is
// returned; a document that does not conform never enters the system.
// Appending results never rewrites existing records, and run status
// updates rewrite runs.json as a whole.
package store
