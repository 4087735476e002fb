// SPDX-License-Identifier: MPL-2.0

package targetconfig

import (
	"errors"

	"gopkg.in/yaml.v3"
)

type (
	// DefaultSource supplies the value of a Default field that was absent
	// or null in the decoded file.
	DefaultSource[T comparable] interface {
		Default() T
	}

	// Default is an optional configuration field whose absent value is
	// filled from S. Enumerations act as their own source (for example
	// Default[TargetType, TargetType]).
	//
	// The zero Default is "unset". Encoding omits the field when its value
	// equals the default, so decode/encode round trips don't materialize
	// defaults into the file.
	Default[T comparable, S DefaultSource[T]] struct {
		value T
		set   bool
	}

	validatable interface {
		IsValid() (bool, []error)
	}
)

// NewDefault returns a Default explicitly set to v.
func NewDefault[T comparable, S DefaultSource[T]](v T) Default[T, S] {
	return Default[T, S]{value: v, set: true}
}

// Value returns the decoded value, or the default when the field was
// absent or null.
func (d Default[T, S]) Value() T {
	if d.set {
		return d.value
	}
	var source S
	return source.Default()
}

// IsSet reports whether the field carried an explicit value.
func (d Default[T, S]) IsSet() bool { return d.set }

// IsZero reports whether the field's value equals the default. yaml.v3
// consults it for omitempty.
func (d Default[T, S]) IsZero() bool {
	var source S
	return d.Value() == source.Default()
}

// UnmarshalYAML decodes the wrapped value. Values that can validate
// themselves are rejected when invalid. yaml.v3 does not call this for
// null nodes, which leaves the field unset.
func (d *Default[T, S]) UnmarshalYAML(node *yaml.Node) error {
	var value T
	if err := node.Decode(&value); err != nil {
		return err
	}
	if v, ok := any(value).(validatable); ok {
		if valid, errs := v.IsValid(); !valid {
			return errors.Join(errs...)
		}
	}
	*d = Default[T, S]{value: value, set: true}
	return nil
}

// MarshalYAML encodes the effective value.
func (d Default[T, S]) MarshalYAML() (any, error) {
	return d.Value(), nil
}

// DefaultTrue is a DefaultSource for boolean fields that default to true.
type DefaultTrue struct{}

// Default implements DefaultSource.
func (DefaultTrue) Default() bool { return true }
