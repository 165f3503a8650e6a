package metric

// Canonical implementation references for the built-in metrics. These are
// the values a metrics.json "class" field uses to select them.
const (
	RefExecutionTime = "metrics.ExecutionTime"
	RefPeakMemory    = "metrics.PeakMemory"
)

// Builtins returns the factory table for the built-in implementations.
// The registry seeds itself from this table; the map is freshly allocated
// on every call so callers may extend it.
func Builtins() map[string]Factory {
	return map[string]Factory{
		RefExecutionTime: NewExecutionTime,
		RefPeakMemory:    NewPeakMemory,
	}
}
