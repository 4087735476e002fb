// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/manifestgen/manifestgen/pkg/model"
)

const (
	// ProductsName is the variable holding the generated products.
	ProductsName = "generatedProducts"
	// TargetsName is the variable holding the generated targets.
	TargetsName = "generatedTargets"
)

// Renderer renders declarations with a fixed indentation style.
type Renderer struct {
	unit string
}

// New returns a Renderer for the given style. The zero style renders with
// four spaces.
func New(style model.IndentationStyle) *Renderer {
	return &Renderer{unit: style.Unit()}
}

// Render returns the product and target declarations. When configFileName is
// not empty, a trailing loop adds it to every target's exclude list so the
// build tool does not treat configuration files as sources.
func (r *Renderer) Render(targets []model.Target, products []model.Product, configFileName string) string {
	productLines := make([]string, len(products))
	for i, p := range products {
		productLines[i] = Product(p)
	}
	targetLines := make([]string, len(targets))
	for i, t := range targets {
		targetLines[i] = r.Target(t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "let %s: [Product] = %s\n\n", ProductsName, r.List(productLines))
	fmt.Fprintf(&b, "let %s: [Target] = %s", TargetsName, r.List(targetLines))

	if configFileName != "" {
		name := quote(configFileName)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "for target in %s {\n", TargetsName)
		fmt.Fprintf(&b, "%sif !target.exclude.contains(%s) {\n", r.unit, name)
		fmt.Fprintf(&b, "%s%starget.exclude.append(%s)\n", r.unit, r.unit, name)
		fmt.Fprintf(&b, "%s}\n", r.unit)
		b.WriteString("}")
	}
	return b.String()
}

// Target renders a target declaration with one argument per line. Optional
// arguments are omitted when empty; dependencies are sorted by their
// rendered text. AllowPackageAccess is not part of the declaration.
func (r *Renderer) Target(t model.Target) string {
	args := []string{"name: " + quote(t.Name)}

	if len(t.Dependencies) > 0 {
		deps := make([]string, len(t.Dependencies))
		for i, d := range t.Dependencies {
			deps[i] = Dependency(d)
		}
		slices.Sort(deps)
		args = append(args, "dependencies: "+r.List(deps))
	}
	if t.Path != "" {
		args = append(args, "path: "+quote(t.Path))
	}
	if len(t.Exclude) > 0 {
		args = append(args, "exclude: "+r.List(quoteAll(t.Exclude)))
	}
	if len(t.Sources) > 0 {
		args = append(args, "sources: "+r.List(quoteAll(t.Sources)))
	}
	if len(t.Resources) > 0 {
		resources := make([]string, len(t.Resources))
		for i, res := range t.Resources {
			resources[i] = Resource(res)
		}
		args = append(args, "resources: "+r.List(resources))
	}
	if len(t.Plugins) > 0 {
		plugins := make([]string, len(t.Plugins))
		for i, p := range t.Plugins {
			plugins[i] = Plugin(p)
		}
		args = append(args, "plugins: "+r.List(plugins))
	}

	kind := t.Kind
	if kind == "" {
		kind = model.TargetRegular
	}
	return "." + kind.String() + "(\n" + r.indent(strings.Join(args, ",\n")) + "\n)"
}

// List renders items as a bracketed list with one item per line, or "[]"
// when there are none.
func (r *Renderer) List(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return "[\n" + r.indent(strings.Join(items, ",\n")) + "\n]"
}

// indent prefixes every line of s with one indentation unit.
func (r *Renderer) indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = r.unit + line
	}
	return strings.Join(lines, "\n")
}

// Product renders a product declaration on a single line.
func Product(p model.Product) string {
	targets := "[" + strings.Join(quoteAll(p.Targets), ", ") + "]"
	name := quote(p.Name)

	switch kind := p.Kind.(type) {
	case model.ExecutableProduct:
		return fmt.Sprintf(".executable(name: %s, targets: %s)", name, targets)
	case model.PluginProduct:
		return fmt.Sprintf(".plugin(name: %s, targets: %s)", name, targets)
	case model.LibraryProduct:
		if kind.Type == model.LibraryUnspecified {
			return fmt.Sprintf(".library(name: %s, targets: %s)", name, targets)
		}
		return fmt.Sprintf(".library(name: %s, type: .%s, targets: %s)", name, kind.Type, targets)
	default:
		// A nil kind is an unspecified library.
		return fmt.Sprintf(".library(name: %s, targets: %s)", name, targets)
	}
}

// Dependency renders a target dependency. Unlike a product kind or a
// resource rule, a dependency has no default variant: a nil d is a
// programming error and panics.
func Dependency(d model.Dependency) string {
	switch dep := d.(type) {
	case model.TargetRef:
		return quote(dep.Name)
	case model.ProductRef:
		if dep.Package == "" {
			return fmt.Sprintf(".product(name: %s)", quote(dep.Name))
		}
		return fmt.Sprintf(".product(name: %s, package: %s)", quote(dep.Name), quote(dep.Package))
	case model.ByNameRef:
		return fmt.Sprintf(".byName(name: %s)", quote(dep.Name))
	default:
		panic(fmt.Sprintf("render: unknown dependency type %T", d))
	}
}

// Resource renders a resource declaration.
func Resource(res model.Resource) string {
	path := quote(res.Path)

	switch rule := res.Rule.(type) {
	case model.CopyRule:
		return fmt.Sprintf(".copy(%s)", path)
	case model.EmbedRule:
		return fmt.Sprintf(".embedInCode(%s)", path)
	case model.ProcessRule:
		if rule.Localization == model.LocalizationNone {
			return fmt.Sprintf(".process(%s)", path)
		}
		return fmt.Sprintf(".process(%s, localization: .%s)", path, rule.Localization)
	default:
		// A nil rule is the build tool's default.
		return fmt.Sprintf(".process(%s)", path)
	}
}

// Plugin renders a plugin usage.
func Plugin(p model.PluginUsage) string {
	if p.Package == "" {
		return fmt.Sprintf(".plugin(name: %s)", quote(p.Name))
	}
	return fmt.Sprintf(".plugin(name: %s, package: %s)", quote(p.Name), quote(p.Package))
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// quote returns s as a Swift string literal.
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

func quoteAll(items []string) []string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = quote(s)
	}
	return quoted
}
