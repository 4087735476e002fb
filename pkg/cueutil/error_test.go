// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "_config.yml"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		originalErr := errors.New("some error")
		err := FormatError(originalErr, "_config.yml")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "_config.yml") {
			t.Errorf("error should contain filepath, got: %v", err)
		}
		if !errors.Is(err, originalErr) {
			t.Errorf("error should wrap the original, got: %v", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: []string{}, expected: ""},
		{name: "single element", path: []string{"type"}, expected: "type"},
		{name: "nested path", path: []string{"target", "path"}, expected: "target.path"},
		{name: "array index", path: []string{"products", "0", "type"}, expected: "products[0].type"},
		{
			name:     "multiple array indices",
			path:     []string{"target", "resources", "2", "rule"},
			expected: "target.resources[2].rule",
		},
		{name: "leading numeric element", path: []string{"0", "name"}, expected: "0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	t.Run("data at exact limit returns nil", func(t *testing.T) {
		t.Parallel()

		if err := CheckFileSize(make([]byte, 100), 100, "_config.yml"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("data exceeding limit returns error", func(t *testing.T) {
		t.Parallel()

		err := CheckFileSize(make([]byte, 101), 100, "_config.yml")
		if err == nil {
			t.Fatal("expected error")
		}
		for _, want := range []string{"_config.yml", "101", "100"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error should contain %q, got: %v", want, err)
			}
		}
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "single issue",
			err:      &ValidationError{FilePath: "a.yml", Issues: []string{"type: conflicting values"}},
			expected: "a.yml: type: conflicting values",
		},
		{
			name:     "multiple issues",
			err:      &ValidationError{FilePath: "a.yml", Issues: []string{"x: bad", "y: worse"}},
			expected: "a.yml: validation failed:\n  x: bad\n  y: worse",
		},
		{
			name:     "no issues",
			err:      &ValidationError{FilePath: "a.yml"},
			expected: "a.yml: validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}
