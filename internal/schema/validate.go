package schema

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

// Validation error codes (E100-E199)
const (
	ErrSchemaViolation  = "E100" // document does not satisfy the CUE schema
	ErrDuplicateID      = "E101" // duplicate identifier within a document
	ErrIDNotCanonical   = "E102" // identifier is not NFC-normalized
	ErrInvalidImplRef   = "E103" // metric implementation reference is not dotted
	ErrUnknownIterRef   = "E110" // run references an unknown iteration id
	ErrUnknownMetricRef = "E111" // run references an unknown metric id
	ErrUnregisteredImpl = "E112" // implementation reference not in the registry
	ErrInternal         = "E199" // schema compilation or lookup failure
)

// ValidationError is one validation finding.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// implRefPattern matches dotted implementation references such as
// "metrics.ExecutionTime". At least two non-empty dot-separated segments.
var implRefPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)+$`)

// IsImplRef reports whether ref has the dotted implementation reference
// shape. The metric registry enforces the same shape on registration so a
// registered name can always appear in a valid document.
func IsImplRef(ref string) bool {
	return implRefPattern.MatchString(ref)
}

// ValidateIterations checks semantic rules on a decoded iterations document.
// Parent references are advisory lineage and deliberately unchecked.
func ValidateIterations(cfg *model.IterationsConfig) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)

	for i, it := range cfg.Iterations {
		field := fmt.Sprintf("iterations[%d].id", i)
		if seen[it.ID] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate iteration id %q", it.ID),
				Code:    ErrDuplicateID,
			})
		}
		seen[it.ID] = true
		errs = append(errs, checkCanonicalID(it.ID, field)...)
	}

	return errs
}

// ValidateMetrics checks semantic rules on a decoded metrics document.
func ValidateMetrics(cfg *model.MetricsConfig) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)

	for i, m := range cfg.Metrics {
		field := fmt.Sprintf("metrics[%d].id", i)
		if seen[m.ID] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate metric id %q", m.ID),
				Code:    ErrDuplicateID,
			})
		}
		seen[m.ID] = true
		errs = append(errs, checkCanonicalID(m.ID, field)...)

		if !IsImplRef(m.ImplRef) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("metrics[%d].class", i),
				Message: fmt.Sprintf("invalid implementation reference %q, expected dotted form like \"metrics.ExecutionTime\"", m.ImplRef),
				Code:    ErrInvalidImplRef,
			})
		}
	}

	return errs
}

// ValidateRuns checks semantic rules on a decoded runs document. Reference
// resolution against the other documents is CrossCheckRuns.
func ValidateRuns(cfg *model.RunsConfig) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)

	for i, r := range cfg.Runs {
		field := fmt.Sprintf("runs[%d].id", i)
		if seen[r.ID] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate run id %q", r.ID),
				Code:    ErrDuplicateID,
			})
		}
		seen[r.ID] = true
		errs = append(errs, checkCanonicalID(r.ID, field)...)
	}

	return errs
}

// CrossCheckRuns verifies that every iteration and metric id referenced by a
// run exists in the corresponding document. The runner performs the same
// check at execution time; surfacing it here lets `validate` catch dangling
// references before anything runs.
func CrossCheckRuns(runs *model.RunsConfig, iters *model.IterationsConfig, metrics *model.MetricsConfig) []ValidationError {
	var errs []ValidationError

	for i, r := range runs.Runs {
		for j, id := range r.IterationIDs {
			if _, ok := iters.ByID(id); !ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("runs[%d].iteration_ids[%d]", i, j),
					Message: fmt.Sprintf("run %q references unknown iteration %q", r.ID, id),
					Code:    ErrUnknownIterRef,
				})
			}
		}
		for j, id := range r.MetricIDs {
			if _, ok := metrics.ByID(id); !ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("runs[%d].metric_ids[%d]", i, j),
					Message: fmt.Sprintf("run %q references unknown metric %q", r.ID, id),
					Code:    ErrUnknownMetricRef,
				})
			}
		}
	}

	return errs
}

// checkCanonicalID reports identifiers that are not in Unicode NFC form.
// Identifiers are compared byte-wise throughout the system, so two visually
// identical ids in different normal forms would silently never match.
func checkCanonicalID(id, field string) []ValidationError {
	if norm.NFC.IsNormalString(id) {
		return nil
	}
	return []ValidationError{{
		Field:   field,
		Message: fmt.Sprintf("identifier %q is not NFC-normalized", id),
		Code:    ErrIDNotCanonical,
	}}
}
