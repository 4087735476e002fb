// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/manifestgen/manifestgen/pkg/model"
	"github.com/manifestgen/manifestgen/pkg/targetconfig"
)

type (
	// Options controls validation strictness and diagnostics.
	Options struct {
		// ValidateProductTargets rejects products that reference targets not
		// built from the same configuration tree. When false such references
		// are only logged.
		ValidateProductTargets bool

		// Logger receives warnings. Nil discards them.
		Logger *log.Logger
	}

	// Result is the canonical model built from a configuration tree.
	Result struct {
		Targets []model.Target
		// Products is nil when no source declares a product.
		Products []model.Product
	}

	// SourceRecord is a decoded configuration of a directory under Sources.
	SourceRecord = targetconfig.Record[targetconfig.SourceConfiguration]

	// TestRecord is a decoded configuration of a directory under Tests.
	TestRecord = targetconfig.Record[targetconfig.TestConfiguration]

	productOrigin struct {
		product model.Product
		path    string
	}
)

// Build returns the targets and products declared by the given records. It
// returns a nil Result and no error when both lists are empty.
func Build(sources []SourceRecord, tests []TestRecord, opts Options) (*Result, error) {
	if len(sources) == 0 && len(tests) == 0 {
		return nil, nil
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	result := &Result{Targets: make([]model.Target, 0, len(sources)+len(tests))}
	var origins []productOrigin

	for _, source := range sources {
		cfg := source.Configuration

		kind := model.TargetRegular
		if cfg.Type.Value() == targetconfig.TargetTypeExecutable {
			kind = model.TargetExecutable
		}

		target, err := makeTarget(source.DirectoryName, kind, cfg.Target)
		if err != nil {
			return nil, &InvalidConfigurationError{Path: source.Path(), Reason: err.Error()}
		}
		result.Targets = append(result.Targets, target)

		for _, productConfig := range cfg.Products {
			product, err := makeProduct(productConfig, target.Name)
			if err != nil {
				return nil, &InvalidConfigurationError{Path: source.Path(), Reason: err.Error()}
			}
			origins = append(origins, productOrigin{product: product, path: source.Path()})
		}
	}

	for _, test := range tests {
		target, err := makeTarget(test.DirectoryName, model.TargetTest, test.Configuration.Target)
		if err != nil {
			return nil, &InvalidConfigurationError{Path: test.Path(), Reason: err.Error()}
		}
		result.Targets = append(result.Targets, target)
	}

	if err := checkProductTargets(result.Targets, origins, opts.ValidateProductTargets, logger); err != nil {
		return nil, err
	}

	for _, origin := range origins {
		result.Products = append(result.Products, origin.product)
	}

	logger.Debug("built model", "targets", len(result.Targets), "products", len(result.Products))
	return result, nil
}

// checkProductTargets reports product target references that do not name a
// built target. It only returns an error when strict is set.
func checkProductTargets(targets []model.Target, origins []productOrigin, strict bool, logger *log.Logger) error {
	known := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		known[t.Name] = struct{}{}
	}

	for _, origin := range origins {
		for _, name := range origin.product.Targets {
			if _, ok := known[name]; ok {
				continue
			}
			if strict {
				return &InvalidConfigurationError{
					Path:   origin.path,
					Reason: fmt.Sprintf("product %q references unknown target %q", origin.product.Name, name),
				}
			}
			logger.Warn("product references unknown target",
				"product", origin.product.Name, "target", name, "file", origin.path)
		}
	}
	return nil
}

// makeTarget merges an optional target configuration with the defaults
// derived from its directory.
func makeTarget(directoryName string, kind model.TargetKind, cfg *targetconfig.TargetConfiguration) (model.Target, error) {
	target := model.Target{
		Name:               directoryName,
		Kind:               kind,
		AllowPackageAccess: true,
	}
	if cfg == nil {
		return target, nil
	}

	if cfg.Name != "" {
		target.Name = cfg.Name
	}
	target.AllowPackageAccess = cfg.PackageAccess.Value()
	target.Path = cfg.Path
	target.Sources = cloneStrings(cfg.Sources)
	target.Exclude = cloneStrings(cfg.Exclude)

	for _, dep := range cfg.Dependencies {
		d, err := makeDependency(dep)
		if err != nil {
			return model.Target{}, err
		}
		target.Dependencies = append(target.Dependencies, d)
	}

	for i, res := range cfg.Resources {
		r, err := makeResource(res)
		if err != nil {
			return model.Target{}, fmt.Errorf("target %q resource %d: %w", target.Name, i, err)
		}
		target.Resources = append(target.Resources, r)
	}

	for _, plugin := range cfg.Plugins {
		target.Plugins = append(target.Plugins, model.PluginUsage{Name: plugin.Name, Package: plugin.Package})
	}

	return target, nil
}

func makeDependency(cfg targetconfig.DependencyConfiguration) (model.Dependency, error) {
	switch cfg.Type {
	// Only product dependencies carry a package; it is ignored otherwise.
	case targetconfig.DependencyTypeTarget, "":
		return model.TargetRef{Name: cfg.Name}, nil
	case targetconfig.DependencyTypeProduct:
		return model.ProductRef{Name: cfg.Name, Package: cfg.Package}, nil
	case targetconfig.DependencyTypeByName:
		return model.ByNameRef{Name: cfg.Name}, nil
	default:
		return nil, fmt.Errorf("dependency %q has unknown type %q", cfg.Name, cfg.Type)
	}
}

// makeResource validates that a localization accompanies only the process rule.
func makeResource(cfg targetconfig.ResourceConfiguration) (model.Resource, error) {
	rule := cfg.Rule.Value()
	if rule != targetconfig.ResourceRuleProcess && cfg.Localization != "" {
		return model.Resource{}, fmt.Errorf("localization %q is only allowed with the process rule, not %q (path %q)",
			cfg.Localization, rule, cfg.Path)
	}

	switch rule {
	case targetconfig.ResourceRuleCopy:
		return model.Resource{Rule: model.CopyRule{}, Path: cfg.Path}, nil
	case targetconfig.ResourceRuleEmbed:
		return model.Resource{Rule: model.EmbedRule{}, Path: cfg.Path}, nil
	case targetconfig.ResourceRuleProcess:
		localization, err := makeLocalization(cfg.Localization)
		if err != nil {
			return model.Resource{}, err
		}
		return model.Resource{Rule: model.ProcessRule{Localization: localization}, Path: cfg.Path}, nil
	default:
		return model.Resource{}, fmt.Errorf("unknown resource rule %q", rule)
	}
}

func makeLocalization(value string) (model.Localization, error) {
	switch model.Localization(value) {
	case model.LocalizationNone:
		return model.LocalizationNone, nil
	case model.LocalizationBase:
		return model.LocalizationBase, nil
	case model.LocalizationDefault:
		return model.LocalizationDefault, nil
	default:
		return model.LocalizationNone, fmt.Errorf("unknown localization %q (valid: base, default)", value)
	}
}

// makeProduct builds a product whose name and targets default to the owning
// target's name.
func makeProduct(cfg targetconfig.ProductConfiguration, targetName string) (model.Product, error) {
	product := model.Product{Name: targetName, Targets: []string{targetName}}
	if cfg.Name != "" {
		product.Name = cfg.Name
	}
	if cfg.Targets != nil {
		product.Targets = cloneStrings(cfg.Targets)
	}

	switch t := cfg.Type.Value(); t {
	case targetconfig.ProductTypeExecutable:
		product.Kind = model.ExecutableProduct{}
	case targetconfig.ProductTypeLibrary:
		product.Kind = model.LibraryProduct{Type: model.LibraryUnspecified}
	case targetconfig.ProductTypeDynamic, targetconfig.ProductTypeDynamicLibrary:
		product.Kind = model.LibraryProduct{Type: model.LibraryDynamic}
	case targetconfig.ProductTypeStatic, targetconfig.ProductTypeStaticLibrary:
		product.Kind = model.LibraryProduct{Type: model.LibraryStatic}
	case targetconfig.ProductTypePlugin:
		product.Kind = model.PluginProduct{}
	default:
		return model.Product{}, fmt.Errorf("product %q has unknown type %q", product.Name, t)
	}
	return product, nil
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
