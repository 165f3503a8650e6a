// Package schema validates the four configuration documents against
// embedded CUE schemas and a small set of semantic rules the schemas
// cannot express.
//
// Validation is two-layered:
//
//   - ValidateBytes checks raw JSON against the CUE definition for the
//     document kind (required fields, types, closed structs, status enum,
//     RFC 3339 timestamps).
//   - ValidateIterations / ValidateMetrics / ValidateRuns / CrossCheckRuns
//     check decoded documents for rules outside CUE's reach: duplicate
//     identifiers, canonical (NFC) identifiers, implementation reference
//     shape, and run references resolving across documents.
//
// All validators collect every finding rather than stopping at the first;
// each finding carries a field path, a message, and a stable error code.
package schema
