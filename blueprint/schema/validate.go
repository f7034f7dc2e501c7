package schema

import (
	"errors"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// ErrSchemaViolation is returned when a blueprint document does not satisfy
// the embedded #Blueprint definition.
var ErrSchemaViolation = errors.New("blueprint does not satisfy schema")

var (
	compileOnce sync.Once
	compiled    cue.Value
	compileErr  error
)

// blueprintDefinition compiles the embedded schema once and returns the
// #Blueprint definition. The compiled value is immutable and safe for
// concurrent use.
func blueprintDefinition() (cue.Value, error) {
	compileOnce.Do(func() {
		ctx := cuecontext.New()
		schemaValue := ctx.CompileBytes(Source, cue.Filename("blueprint.cue"))
		if err := schemaValue.Err(); err != nil {
			compileErr = fmt.Errorf("schema: compiling embedded schema: %w", err)
			return
		}

		def := schemaValue.LookupPath(cue.ParsePath("#Blueprint"))
		if err := def.Err(); err != nil {
			compileErr = fmt.Errorf("schema: looking up #Blueprint: %w", err)
			return
		}

		compiled = def
	})

	return compiled, compileErr
}

// ValidateYAML checks that the given YAML document satisfies the embedded
// #Blueprint schema. The filename is used only for error positions.
//
// Returns an error wrapping ErrSchemaViolation when the document violates
// the schema. The error message carries CUE's per-field details, so callers
// can surface it to users directly.
func ValidateYAML(filename string, source []byte) error {
	def, err := blueprintDefinition()
	if err != nil {
		return err
	}

	file, err := cueyaml.Extract(filename, source)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSchemaViolation, cueerrors.Details(err, nil))
	}

	ctx := def.Context()
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrSchemaViolation, cueerrors.Details(err, nil))
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrSchemaViolation, cueerrors.Details(err, nil))
	}

	return nil
}
