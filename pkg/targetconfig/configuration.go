// SPDX-License-Identifier: MPL-2.0

package targetconfig

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// TargetTypeRegular is a library-style target. It is the default.
	TargetTypeRegular TargetType = "regular"
	// TargetTypeExecutable is an executable target.
	TargetTypeExecutable TargetType = "executable"

	// ProductTypeExecutable is an executable product.
	ProductTypeExecutable ProductType = "executable"
	// ProductTypeLibrary is a library product with unspecified linkage. It is the default.
	ProductTypeLibrary ProductType = "library"
	// ProductTypeDynamic is a dynamically-linked library product.
	ProductTypeDynamic ProductType = "dynamic"
	// ProductTypeDynamicLibrary is an alias of ProductTypeDynamic.
	ProductTypeDynamicLibrary ProductType = "dynamicLibrary"
	// ProductTypeStatic is a statically-linked library product.
	ProductTypeStatic ProductType = "static"
	// ProductTypeStaticLibrary is an alias of ProductTypeStatic.
	ProductTypeStaticLibrary ProductType = "staticLibrary"
	// ProductTypePlugin is a plugin product.
	ProductTypePlugin ProductType = "plugin"

	// ResourceRuleCopy copies the resource verbatim.
	ResourceRuleCopy ResourceRule = "copy"
	// ResourceRuleEmbed embeds the resource in code.
	ResourceRuleEmbed ResourceRule = "embed"
	// ResourceRuleProcess processes the resource. It is the default.
	ResourceRuleProcess ResourceRule = "process"

	// DependencyTypeTarget refers to a target in the same package.
	DependencyTypeTarget DependencyType = "target"
	// DependencyTypeProduct refers to a product.
	DependencyTypeProduct DependencyType = "product"
	// DependencyTypeByName refers to a target or product by name.
	DependencyTypeByName DependencyType = "byName"
)

var (
	// ErrInvalidEnumValue is returned when an enumerated field holds an unknown value.
	ErrInvalidEnumValue = errors.New("invalid value")

	// ErrMissingName is returned when an object-form dependency has no name.
	ErrMissingName = errors.New("dependency name is required")
)

type (
	// TargetType is the raw "type" of a source directory.
	TargetType string

	// ProductType is the raw "type" of a product.
	ProductType string

	// ResourceRule is the raw "rule" of a resource.
	ResourceRule string

	// DependencyType is the raw "type" of an object-form dependency.
	DependencyType string

	// InvalidEnumValueError reports an unknown value for an enumerated field.
	// It wraps ErrInvalidEnumValue for errors.Is() compatibility.
	InvalidEnumValueError struct {
		Field string
		Value string
		Valid []string
	}

	// SourceConfiguration is the configuration file of a directory under Sources.
	SourceConfiguration struct {
		Type     Default[TargetType, TargetType] `yaml:"type,omitempty"`
		Target   *TargetConfiguration             `yaml:"target,omitempty"`
		Products []ProductConfiguration           `yaml:"products,omitempty"`
	}

	// TestConfiguration is the configuration file of a directory under Tests.
	TestConfiguration struct {
		Target *TargetConfiguration `yaml:"target,omitempty"`
	}

	// TargetConfiguration holds the target fields shared by sources and tests.
	TargetConfiguration struct {
		Name          string                     `yaml:"name,omitempty"`
		Dependencies  []DependencyConfiguration  `yaml:"dependencies,omitempty"`
		Path          string                     `yaml:"path,omitempty"`
		Exclude       []string                   `yaml:"exclude,omitempty"`
		Sources       []string                   `yaml:"sources,omitempty"`
		Resources     []ResourceConfiguration    `yaml:"resources,omitempty"`
		PackageAccess Default[bool, DefaultTrue] `yaml:"packageAccess,omitempty"`
		Plugins       []PluginUsageConfiguration `yaml:"plugins,omitempty"`
	}

	// ProductConfiguration declares a product built from the directory's target.
	// Name defaults to the target's name when empty, Targets when nil.
	ProductConfiguration struct {
		Type    Default[ProductType, ProductType] `yaml:"type,omitempty"`
		Name    string                            `yaml:"name,omitempty"`
		Targets []string                          `yaml:"targets,omitempty"`
	}

	// ResourceConfiguration declares a resource. Localization is only
	// meaningful for the process rule.
	ResourceConfiguration struct {
		Rule         Default[ResourceRule, ResourceRule] `yaml:"rule,omitempty"`
		Path         string                              `yaml:"path"`
		Localization string                              `yaml:"localization,omitempty"`
	}

	// PluginUsageConfiguration applies a plugin to the target.
	PluginUsageConfiguration struct {
		Name    string `yaml:"name"`
		Package string `yaml:"package,omitempty"`
	}

	// DependencyConfiguration is a target dependency. It decodes from either
	// a bare string (a target in the same package) or an object with name,
	// type and package.
	DependencyConfiguration struct {
		Name    string
		Type    DependencyType
		Package string
	}

	dependencyObject struct {
		Name    string         `yaml:"name"`
		Type    DependencyType `yaml:"type,omitempty"`
		Package string         `yaml:"package,omitempty"`
	}
)

// Default implements DefaultSource.
func (TargetType) Default() TargetType { return TargetTypeRegular }

// String returns the string representation of the TargetType.
func (t TargetType) String() string { return string(t) }

// IsValid returns whether the TargetType is one of the defined types,
// and a list of validation errors if it is not.
func (t TargetType) IsValid() (bool, []error) {
	switch t {
	case TargetTypeRegular, TargetTypeExecutable:
		return true, nil
	default:
		return false, []error{&InvalidEnumValueError{
			Field: "type", Value: string(t), Valid: []string{"regular", "executable"},
		}}
	}
}

// Default implements DefaultSource.
func (ProductType) Default() ProductType { return ProductTypeLibrary }

// String returns the string representation of the ProductType.
func (t ProductType) String() string { return string(t) }

// IsValid returns whether the ProductType is one of the defined types,
// and a list of validation errors if it is not.
func (t ProductType) IsValid() (bool, []error) {
	switch t {
	case ProductTypeExecutable, ProductTypeLibrary, ProductTypeDynamic, ProductTypeDynamicLibrary,
		ProductTypeStatic, ProductTypeStaticLibrary, ProductTypePlugin:
		return true, nil
	default:
		return false, []error{&InvalidEnumValueError{
			Field: "type",
			Value: string(t),
			Valid: []string{"executable", "library", "dynamic", "dynamicLibrary", "static", "staticLibrary", "plugin"},
		}}
	}
}

// Default implements DefaultSource.
func (ResourceRule) Default() ResourceRule { return ResourceRuleProcess }

// String returns the string representation of the ResourceRule.
func (r ResourceRule) String() string { return string(r) }

// IsValid returns whether the ResourceRule is one of the defined rules,
// and a list of validation errors if it is not.
func (r ResourceRule) IsValid() (bool, []error) {
	switch r {
	case ResourceRuleCopy, ResourceRuleEmbed, ResourceRuleProcess:
		return true, nil
	default:
		return false, []error{&InvalidEnumValueError{
			Field: "rule", Value: string(r), Valid: []string{"copy", "embed", "process"},
		}}
	}
}

// String returns the string representation of the DependencyType.
func (t DependencyType) String() string { return string(t) }

// IsValid returns whether the DependencyType is one of the defined types,
// and a list of validation errors if it is not.
func (t DependencyType) IsValid() (bool, []error) {
	switch t {
	case DependencyTypeTarget, DependencyTypeProduct, DependencyTypeByName:
		return true, nil
	default:
		return false, []error{&InvalidEnumValueError{
			Field: "type", Value: string(t), Valid: []string{"target", "product", "byName"},
		}}
	}
}

// Error implements the error interface for InvalidEnumValueError.
func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid %s %q (valid: %v)", e.Field, e.Value, e.Valid)
}

// Unwrap returns ErrInvalidEnumValue for errors.Is() compatibility.
func (e *InvalidEnumValueError) Unwrap() error { return ErrInvalidEnumValue }

// UnmarshalYAML decodes a dependency from a bare string or an object. An
// object without a type is a product dependency when it names a package and
// a target dependency otherwise.
func (d *DependencyConfiguration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		if name == "" {
			return ErrMissingName
		}
		*d = DependencyConfiguration{Name: name, Type: DependencyTypeTarget}
		return nil
	}

	var obj dependencyObject
	if err := node.Decode(&obj); err != nil {
		return err
	}
	if obj.Name == "" {
		return ErrMissingName
	}

	switch {
	case obj.Type != "":
		if valid, errs := obj.Type.IsValid(); !valid {
			return errors.Join(errs...)
		}
	case obj.Package != "":
		obj.Type = DependencyTypeProduct
	default:
		obj.Type = DependencyTypeTarget
	}

	*d = DependencyConfiguration(obj)
	return nil
}

// MarshalYAML encodes target dependencies as bare strings and everything
// else as objects.
func (d DependencyConfiguration) MarshalYAML() (any, error) {
	if d.Type == DependencyTypeTarget || (d.Type == "" && d.Package == "") {
		return d.Name, nil
	}
	return dependencyObject(d), nil
}
