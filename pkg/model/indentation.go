// SPDX-License-Identifier: MPL-2.0

package model

import (
	"errors"
	"fmt"
)

const (
	// IndentTwoSpaces indents generated code with two spaces per level.
	IndentTwoSpaces IndentationStyle = "twoSpaces"
	// IndentFourSpaces indents generated code with four spaces per level.
	IndentFourSpaces IndentationStyle = "fourSpaces"
	// IndentTabs indents generated code with one tab per level.
	IndentTabs IndentationStyle = "tabs"

	// DefaultIndentationStyle is used when no style is configured.
	DefaultIndentationStyle = IndentFourSpaces
)

// ErrInvalidIndentationStyle is returned when an IndentationStyle value is not recognized.
var ErrInvalidIndentationStyle = errors.New("invalid indentation style")

type (
	// IndentationStyle is the style of indentation used in generated source.
	IndentationStyle string

	// InvalidIndentationStyleError is returned when an IndentationStyle value
	// is not recognized. It wraps ErrInvalidIndentationStyle for errors.Is().
	InvalidIndentationStyleError struct {
		Value IndentationStyle
	}
)

// String returns the string representation of the IndentationStyle.
func (s IndentationStyle) String() string { return string(s) }

// IsValid returns whether the IndentationStyle is one of the defined styles,
// and a list of validation errors if it is not.
func (s IndentationStyle) IsValid() (bool, []error) {
	switch s {
	case IndentTwoSpaces, IndentFourSpaces, IndentTabs:
		return true, nil
	default:
		return false, []error{&InvalidIndentationStyleError{Value: s}}
	}
}

// Unit returns the text of one indentation level. The zero value and
// unrecognized styles fall back to DefaultIndentationStyle.
func (s IndentationStyle) Unit() string {
	switch s {
	case IndentTwoSpaces:
		return "  "
	case IndentTabs:
		return "\t"
	default:
		return "    "
	}
}

// Error implements the error interface for InvalidIndentationStyleError.
func (e *InvalidIndentationStyleError) Error() string {
	return fmt.Sprintf("invalid indentation style %q (valid: twoSpaces, fourSpaces, tabs)", e.Value)
}

// Unwrap returns ErrInvalidIndentationStyle for errors.Is() compatibility.
func (e *InvalidIndentationStyleError) Unwrap() error { return ErrInvalidIndentationStyle }
