package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

// Kind identifies one of the four configuration documents.
type Kind string

const (
	KindIterations Kind = "iterations"
	KindMetrics    Kind = "metrics"
	KindRuns       Kind = "runs"
	KindResults    Kind = "results"
)

// kindDefinitions maps each document kind to its CUE definition.
var kindDefinitions = map[Kind]string{
	KindIterations: "#IterationsDoc",
	KindMetrics:    "#MetricsDoc",
	KindRuns:       "#RunsDoc",
	KindResults:    "#ResultsDoc",
}

var (
	compileOnce sync.Once
	compiled    cue.Value
	compileErr  error
)

// schemaValue compiles the embedded schema exactly once. CUE values are
// immutable, so the compiled value is safe to share.
func schemaValue() (cue.Value, error) {
	compileOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			compileErr = fmt.Errorf("compiling document schema: %w", err)
			return
		}
		compiled = v
	})
	return compiled, compileErr
}

// ValidateBytes checks raw JSON document bytes against the schema for kind.
// The bytes must already be well-formed JSON; syntax checking is the
// caller's concern. Returns every finding; an empty slice means the
// document conforms.
func ValidateBytes(kind Kind, data []byte) []ValidationError {
	root, err := schemaValue()
	if err != nil {
		return []ValidationError{{
			Field:   "schema",
			Message: err.Error(),
			Code:    ErrInternal,
		}}
	}

	defPath, ok := kindDefinitions[kind]
	if !ok {
		return []ValidationError{{
			Field:   "schema",
			Message: fmt.Sprintf("unknown document kind %q", kind),
			Code:    ErrInternal,
		}}
	}

	def := root.LookupPath(cue.ParsePath(defPath))
	if err := def.Err(); err != nil {
		return []ValidationError{{
			Field:   "schema",
			Message: fmt.Sprintf("looking up %s: %v", defPath, err),
			Code:    ErrInternal,
		}}
	}

	if err := cuejson.Validate(data, def); err != nil {
		return convertCUEErrors(err)
	}
	return nil
}

// convertCUEErrors flattens a CUE error (which may aggregate several) into
// one coded finding per underlying error.
func convertCUEErrors(err error) []ValidationError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return []ValidationError{{
			Field:   "",
			Message: err.Error(),
			Code:    ErrSchemaViolation,
		}}
	}

	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		out = append(out, ValidationError{
			Field:   strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
			Code:    ErrSchemaViolation,
		})
	}
	return out
}
