// SPDX-License-Identifier: MPL-2.0

package model

import (
	"errors"
	"fmt"
)

const (
	// TargetRegular is a target containing code for the package's functionality.
	TargetRegular TargetKind = "target"
	// TargetExecutable is a target containing an executable's main module.
	TargetExecutable TargetKind = "executableTarget"
	// TargetTest is a target containing tests for the package's other targets.
	TargetTest TargetKind = "testTarget"

	// LibraryUnspecified leaves the linkage decision to the build tool.
	LibraryUnspecified LibraryType = ""
	// LibraryStatic is a statically-linked library.
	LibraryStatic LibraryType = "static"
	// LibraryDynamic is a dynamically-linked library.
	LibraryDynamic LibraryType = "dynamic"

	// LocalizationNone means a processed resource carries no localization.
	LocalizationNone Localization = ""
	// LocalizationBase is the base internationalization.
	LocalizationBase Localization = "base"
	// LocalizationDefault is the default localization.
	LocalizationDefault Localization = "default"
)

// ErrInvalidTargetKind is returned when a TargetKind value is not recognized.
var ErrInvalidTargetKind = errors.New("invalid target kind")

type (
	// TargetKind is the kind of a target and doubles as the name of the
	// manifest function that declares it.
	TargetKind string

	// LibraryType is the linkage of a library product.
	LibraryType string

	// Localization is the localization of a processed resource.
	Localization string

	// Target is a named declaration of a compilable unit within a package.
	Target struct {
		Name string
		Kind TargetKind
		// AllowPackageAccess controls access to package declarations from
		// other targets in the package. It is not rendered into declarations.
		AllowPackageAccess bool
		// Path is relative to the package root. Empty means the tool's default.
		Path         string
		Sources      []string
		Resources    []Resource
		Exclude      []string
		Dependencies []Dependency
		Plugins      []PluginUsage
	}

	// Product is a named, externally consumable artifact built from one or
	// more targets.
	Product struct {
		Name    string
		Kind    ProductKind
		Targets []string
	}

	// PluginUsage is a plugin applied to a target.
	PluginUsage struct {
		Name string
		// Package is the package defining the plugin; empty for a plugin
		// defined in the same package.
		Package string
	}

	// Resource is a file or directory bundled with a target.
	Resource struct {
		Rule ResourceRule
		Path string
	}

	// ProductKind is the closed set of product variants.
	ProductKind interface {
		isProductKind()
	}

	// ExecutableProduct is an executable product.
	ExecutableProduct struct{}

	// LibraryProduct is a library product with optional explicit linkage.
	LibraryProduct struct {
		Type LibraryType
	}

	// PluginProduct is a plugin product.
	PluginProduct struct{}

	// ResourceRule is the closed set of resource rules.
	ResourceRule interface {
		isResourceRule()
	}

	// CopyRule copies the resource verbatim.
	CopyRule struct{}

	// EmbedRule embeds the resource contents in code.
	EmbedRule struct{}

	// ProcessRule applies platform-specific processing to the resource.
	ProcessRule struct {
		Localization Localization
	}

	// Dependency is the closed set of target dependency variants.
	Dependency interface {
		// DependencyName returns the referenced target or product name.
		DependencyName() string
		isDependency()
	}

	// TargetRef depends on a target in the same package.
	TargetRef struct {
		Name string
	}

	// ProductRef depends on a product, optionally from another package.
	ProductRef struct {
		Name    string
		Package string
	}

	// ByNameRef depends on a target or product resolved by name.
	ByNameRef struct {
		Name string
	}

	// InvalidTargetKindError is returned when a TargetKind value is not recognized.
	// It wraps ErrInvalidTargetKind for errors.Is() compatibility.
	InvalidTargetKindError struct {
		Value TargetKind
	}
)

func (ExecutableProduct) isProductKind() {}
func (LibraryProduct) isProductKind()    {}
func (PluginProduct) isProductKind()     {}

func (CopyRule) isResourceRule()    {}
func (EmbedRule) isResourceRule()   {}
func (ProcessRule) isResourceRule() {}

func (TargetRef) isDependency()  {}
func (ProductRef) isDependency() {}
func (ByNameRef) isDependency()  {}

// DependencyName returns the referenced target name.
func (d TargetRef) DependencyName() string { return d.Name }

// DependencyName returns the referenced product name.
func (d ProductRef) DependencyName() string { return d.Name }

// DependencyName returns the referenced name.
func (d ByNameRef) DependencyName() string { return d.Name }

// String returns the string representation of the TargetKind.
func (k TargetKind) String() string { return string(k) }

// IsValid returns whether the TargetKind is one of the defined kinds,
// and a list of validation errors if it is not.
func (k TargetKind) IsValid() (bool, []error) {
	switch k {
	case TargetRegular, TargetExecutable, TargetTest:
		return true, nil
	default:
		return false, []error{&InvalidTargetKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidTargetKindError.
func (e *InvalidTargetKindError) Error() string {
	return fmt.Sprintf("invalid target kind %q (valid: target, executableTarget, testTarget)", e.Value)
}

// Unwrap returns ErrInvalidTargetKind for errors.Is() compatibility.
func (e *InvalidTargetKindError) Unwrap() error { return ErrInvalidTargetKind }
