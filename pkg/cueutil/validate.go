// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"bytes"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// ValidateYAML validates YAML (or JSON) bytes against the schema definition
// at schemaPath (e.g. "#Source"). Every document in a YAML stream must
// satisfy the definition. An empty document is valid.
func ValidateYAML(schema string, data []byte, schemaPath string, opts ...Option) error {
	options := applyOptions(opts)

	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return err
	}

	def, err := lookupDefinition(cuecontext.New(), schema, schemaPath)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := cueyaml.Validate(data, def); err != nil {
		return FormatError(err, options.filename)
	}
	return nil
}

// ValidateValue validates an already-decoded Go value (typically a
// map[string]any produced by a YAML or TOML decoder) against the schema
// definition at schemaPath.
func ValidateValue(schema string, value any, schemaPath string, opts ...Option) error {
	options := applyOptions(opts)

	ctx := cuecontext.New()
	def, err := lookupDefinition(ctx, schema, schemaPath)
	if err != nil {
		return err
	}

	encoded := ctx.Encode(value)
	if encoded.Err() != nil {
		return FormatError(encoded.Err(), options.filename)
	}

	// Configuration fields are optional, so values need not be concrete.
	unified := def.Unify(encoded)
	if err := unified.Validate(); err != nil {
		return FormatError(err, options.filename)
	}
	return nil
}

func applyOptions(opts []Option) validateOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// lookupDefinition compiles the embedded schema and returns the definition
// at schemaPath. Failures here are programming errors in the schema itself.
func lookupDefinition(ctx *cue.Context, schema, schemaPath string) (cue.Value, error) {
	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	def := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, def.Err())
	}
	return def, nil
}
