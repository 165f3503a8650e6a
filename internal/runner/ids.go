package runner

import "github.com/google/uuid"

// IDGenerator mints execution ids. One id is minted per ExecuteRun call and
// stamped into the metadata of every result that execution appends, so rows
// from different executions of the same run can be told apart later.
// Implemented by UUIDv7Generator (production) and testutil.FixedIDGenerator
// (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 execution ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so ids sort by
// creation time. Sorting a results file by execution id groups rows by
// execution in chronological order.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
