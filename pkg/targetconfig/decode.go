// SPDX-License-Identifier: MPL-2.0

package targetconfig

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/manifestgen/manifestgen/pkg/cueutil"
)

// ErrConfigDecode is the sentinel for configuration files that cannot be
// decoded or do not match the schema.
var ErrConfigDecode = errors.New("configuration decode failed")

//go:embed targetconfig_schema.cue
var schema string

type (
	// DecodeError is returned when a configuration file is malformed.
	// It wraps ErrConfigDecode and the underlying cause.
	DecodeError struct {
		// Path is the configuration file, relative to the package root.
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var ve *cueutil.ValidationError
	if errors.As(e.Err, &ve) && ve.FilePath == e.Path {
		return ve.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns ErrConfigDecode and the cause.
func (e *DecodeError) Unwrap() []error { return []error{ErrConfigDecode, e.Err} }

// Schema returns the CUE schema that configuration files are validated against.
func Schema() string { return schema }

// DecodeSource decodes the configuration file of a directory under Sources.
// filePath is used only in error messages.
func DecodeSource(data []byte, filePath string) (SourceConfiguration, error) {
	return decode[SourceConfiguration](data, filePath, "#Source")
}

// DecodeTest decodes the configuration file of a directory under Tests.
func DecodeTest(data []byte, filePath string) (TestConfiguration, error) {
	return decode[TestConfiguration](data, filePath, "#Test")
}

func decode[C any](data []byte, filePath, definition string) (C, error) {
	var cfg C

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filePath); err != nil {
		return cfg, &DecodeError{Path: filePath, Err: err}
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return cfg, &DecodeError{Path: filePath, Err: err}
	}
	if isEmptyDocument(&node) {
		return cfg, nil
	}

	if err := cueutil.ValidateYAML(schema, data, definition, cueutil.WithFilename(filePath)); err != nil {
		return cfg, &DecodeError{Path: filePath, Err: err}
	}

	if err := node.Decode(&cfg); err != nil {
		return cfg, &DecodeError{Path: filePath, Err: err}
	}
	return cfg, nil
}

// isEmptyDocument reports whether a parsed file holds no configuration:
// no content at all, or a single null document.
func isEmptyDocument(node *yaml.Node) bool {
	if node.Kind == 0 {
		return true
	}
	if node.Kind != yaml.DocumentNode {
		return false
	}
	if len(node.Content) == 0 {
		return true
	}
	root := node.Content[0]
	return root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null"
}
