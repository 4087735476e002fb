// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE schema validation shared by the
// per-directory target configuration decoder and the generator configuration
// loader.
//
// Both callers embed a CUE schema and validate user-provided data against one
// of its definitions before decoding it into Go structs:
//
//	//go:embed targetconfig_schema.cue
//	var schema string
//
//	if err := cueutil.ValidateYAML(schema, data, "#Source",
//	    cueutil.WithFilename("Sources/Foo/_config.yml")); err != nil {
//	    return err // includes the offending field path
//	}
//
// Errors carry the file name and a JSON-path style field location
// (e.g. "Sources/Foo/_config.yml: target.resources[0].rule: ...").
package cueutil
