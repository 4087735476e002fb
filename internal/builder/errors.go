// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is the sentinel for configuration records that
// decode cleanly but are semantically inconsistent.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type (
	// InvalidConfigurationError identifies the configuration file holding an
	// inconsistent record. It wraps ErrInvalidConfiguration for errors.Is().
	InvalidConfigurationError struct {
		// Path is the configuration file, relative to the package root.
		Path   string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration at %s: %s", e.Path, e.Reason)
}

// Unwrap returns ErrInvalidConfiguration for errors.Is() compatibility.
func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }
