// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manifestgen/manifestgen/pkg/model"
)

const (
	// DefaultTargetConfigurationFileName is the per-directory configuration file name.
	DefaultTargetConfigurationFileName = "_config.yml"
	// DefaultManifestFileName is the manifest the generated region is spliced into.
	DefaultManifestFileName = "Package.swift"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidFileName is the sentinel error wrapped by InvalidFileNameError.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrConfigFileNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigFileNotFound = errors.New("config file not found")
	// ErrUnsupportedFormat is returned for config files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

type (
	// Config is the generator configuration.
	Config struct {
		// IndentationStyle is the indentation of the generated declarations.
		IndentationStyle model.IndentationStyle `mapstructure:"indentationStyle" yaml:"indentationStyle"`
		// TargetConfigurationFileName is the name of the per-directory
		// configuration file.
		TargetConfigurationFileName string `mapstructure:"targetConfigurationFileName" yaml:"targetConfigurationFileName"`
		// ValidateProductTargets rejects products that reference unknown targets.
		ValidateProductTargets bool `mapstructure:"validateProductTargets" yaml:"validateProductTargets"`
		// ManifestFileName is the manifest inside the package directory.
		ManifestFileName string `mapstructure:"manifestFileName" yaml:"manifestFileName"`
	}

	// InvalidConfigError is returned when a Config or the file it was loaded
	// from has invalid fields. It wraps ErrInvalidConfig and each field error.
	InvalidConfigError struct {
		// Path is the configuration file, empty for defaults and environment.
		Path        string
		FieldErrors []error
	}

	// InvalidFileNameError is returned when a configured file name is empty
	// or contains a path separator.
	InvalidFileNameError struct {
		Field string
		Value string
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		IndentationStyle:            model.DefaultIndentationStyle,
		TargetConfigurationFileName: DefaultTargetConfigurationFileName,
		ValidateProductTargets:      false,
		ManifestFileName:            DefaultManifestFileName,
	}
}

// IsValid returns whether the Config is valid, and a list of validation
// errors if it is not.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.IndentationStyle.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if err := validateFileName("targetConfigurationFileName", c.TargetConfigurationFileName); err != nil {
		errs = append(errs, err)
	}
	if err := validateFileName("manifestFileName", c.ManifestFileName); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func validateFileName(field, value string) error {
	if strings.TrimSpace(value) == "" || value == "." || value == ".." ||
		strings.ContainsAny(value, `/\`) || filepath.Base(value) != value {
		return &InvalidFileNameError{Field: field, Value: value}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	var msg strings.Builder
	msg.WriteString("invalid config")
	if e.Path != "" {
		msg.WriteString(" ")
		msg.WriteString(e.Path)
	}
	switch len(e.FieldErrors) {
	case 0:
	case 1:
		msg.WriteString(": ")
		msg.WriteString(e.FieldErrors[0].Error())
	default:
		fmt.Fprintf(&msg, ": %d field error(s)", len(e.FieldErrors))
		for _, err := range e.FieldErrors {
			msg.WriteString("\n  ")
			msg.WriteString(err.Error())
		}
	}
	return msg.String()
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() and
// errors.As() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface for InvalidFileNameError.
func (e *InvalidFileNameError) Error() string {
	return fmt.Sprintf("%s: invalid file name %q (must be a plain file name)", e.Field, e.Value)
}

// Unwrap returns ErrInvalidFileName for errors.Is() compatibility.
func (e *InvalidFileNameError) Unwrap() error { return ErrInvalidFileName }
