// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/manifestgen/manifestgen/pkg/targetconfig"
)

// defaultDebounce lets an editor's write-then-rename settle into one run.
const defaultDebounce = 300 * time.Millisecond

// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

// defaultIgnores are never reported, whatever the configured patterns.
var defaultIgnores = []string{
	"**/.*/**",
	"**/.*",
	"**/*.swp",
	"**/*~",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// PackagePath is the package root. Sources and Tests below it are
		// watched. Empty means the working directory.
		PackagePath string

		// FileName is the per-directory configuration file name.
		FileName string

		// Ignore are extra doublestar patterns, relative to PackagePath, that
		// never trigger a run.
		Ignore []string

		// Debounce is the quiet period before OnChange fires. Zero or less
		// uses defaultDebounce.
		Debounce time.Duration

		// OnChange receives the changed paths relative to PackagePath. Calls
		// never overlap.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives watcher diagnostics. Nil discards them.
		Logger *log.Logger
	}

	// InvalidWatchConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidWatchConfig for errors.Is() compatibility.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}
)

// Validate reports every invalid field of the Config.
func (c Config) Validate() error {
	var errs []error
	if c.FileName == "" || strings.ContainsAny(c.FileName, `/\`) {
		errs = append(errs, fmt.Errorf("file name %q must be a plain, non-empty file name", c.FileName))
	}
	if c.PackagePath != "" && strings.TrimSpace(c.PackagePath) == "" {
		errs = append(errs, errors.New("package path must not be blank"))
	}
	for _, pattern := range c.Ignore {
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid ignore pattern %q", pattern))
		}
	}
	if len(errs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: errs}
	}
	return nil
}

// Patterns returns the doublestar patterns, relative to the package root,
// whose changes affect the generated manifest: a target root or target
// directory appearing or disappearing, and any configuration file.
func (c Config) Patterns() []string {
	var patterns []string
	for _, root := range []targetconfig.Root{targetconfig.RootSources, targetconfig.RootTests} {
		patterns = append(patterns,
			string(root),
			path.Join(string(root), "*"),
			path.Join(string(root), "*", c.FileName),
		)
	}
	return patterns
}

// Error implements the error interface.
func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("invalid watch config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	out := make([]string, len(defaultIgnores))
	copy(out, defaultIgnores)
	return out
}
