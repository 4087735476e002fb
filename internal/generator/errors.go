// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"errors"
	"fmt"
)

// ErrIO is the sentinel for filesystem failures of the package layout or the
// manifest.
var ErrIO = errors.New("i/o error")

// IOError is a filesystem failure. It wraps ErrIO and the underlying cause.
type IOError struct {
	// Op is the failed operation, e.g. "read" or "write".
	Op string
	// Path is the file or directory involved.
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns ErrIO and the cause.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }
