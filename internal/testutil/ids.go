package testutil

// FixedIDGenerator returns the same execution id every time.
//
// This enables deterministic test execution and golden snapshot comparison:
// the same scenario with the same FixedIDGenerator produces byte-identical
// results documents.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator that always returns id.
//
// If id is empty, Generate returns "test-execution-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-execution-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed execution id.
//
// Implements runner.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
