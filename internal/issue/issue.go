// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"sort"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// ConfigDecodeFailedId is a target configuration file that cannot be decoded.
	ConfigDecodeFailedId Id = iota + 1
	// InvalidConfigurationId is a decodable but inconsistent target configuration.
	InvalidConfigurationId
	// ManifestParseFailedId is a manifest with unmatched or misplaced markers.
	ManifestParseFailedId
	// PackageLayoutId is a package directory missing Sources, Tests or the manifest.
	PackageLayoutId
	// ManifestWriteFailedId is a manifest that could not be written.
	ManifestWriteFailedId
	// GeneratorConfigInvalidId is a generator configuration file that is invalid.
	GeneratorConfigInvalidId
	// ManifestOutdatedId is a manifest whose generated region is stale.
	ManifestOutdatedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is Markdown guidance rendered for the user.
	MarkdownMsg string

	// HttpLink is a link to further documentation.
	HttpLink string

	// Issue is a catalog entry with longer guidance for a class of failures.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

var (
	render = glamour.Render

	configDecodeFailedIssue = &Issue{
		id: ConfigDecodeFailedId,
		mdMsg: `
# A target configuration file could not be read

Every directory under ` + "`Sources`" + ` and ` + "`Tests`" + ` may hold a YAML file
(by default ` + "`_config.yml`" + `). All of its fields are optional, but the ones
present must have the right shape.

## Things you can try
- Check the YAML syntax of the file named above.
- Run ` + "`manifestgen config schema`" + ` for the full list of fields.
- Compare it with the expected layout:
~~~yaml
type: executable          # or regular (default)
target:
  name: App
  dependencies:
    - Core                # a target in this package
    - name: ArgumentParser
      package: swift-argument-parser
  resources:
    - path: Assets
      rule: copy          # copy, embed or process (default)
products:
  - type: executable      # executable, library (default), static, dynamic, plugin
~~~`,
		extLinks: []HttpLink{"https://yaml.org/spec/1.2.2/"},
	}

	invalidConfigurationIssue = &Issue{
		id: InvalidConfigurationId,
		mdMsg: `
# A target configuration is inconsistent

The file decoded cleanly, but some fields contradict each other.

## Common causes
- ` + "`localization`" + ` on a resource whose rule is ` + "`copy`" + ` or ` + "`embed`" + `.
  Only processed resources can be localized.
- A dependency of type ` + "`target`" + ` or ` + "`byName`" + ` that names a package.
- A product listing a target that does not exist, with
  ` + "`validateProductTargets`" + ` enabled.`,
	}

	manifestParseFailedIssue = &Issue{
		id: ManifestParseFailedId,
		mdMsg: `
# The manifest's generated region is malformed

manifestgen owns the text between these two lines of ` + "`Package.swift`" + `:
~~~swift
// manifestgen:begin (generated by manifestgen; do not edit)
// manifestgen:end
~~~

Each marker must appear exactly once, begin before end.

## Things you can try
- Restore the missing marker, or delete both to let manifestgen append a new region.
- Remove duplicated markers left behind by a merge.`,
	}

	packageLayoutIssue = &Issue{
		id: PackageLayoutId,
		mdMsg: `
# The package directory is incomplete

manifestgen expects a ` + "`Package.swift`" + `, a ` + "`Sources`" + ` directory and a
` + "`Tests`" + ` directory at the package path.

## Things you can try
- Run from the package root or pass ` + "`--package-path`" + `.
- Create the missing directory, even if it is empty.`,
	}

	manifestWriteFailedIssue = &Issue{
		id: ManifestWriteFailedId,
		mdMsg: `
# The manifest could not be written

The new manifest is written to a temporary file next to ` + "`Package.swift`" + `
and then renamed over it, so the original is left untouched.

## Things you can try
- Check that the package directory is writable.
- Check free disk space.`,
	}

	generatorConfigInvalidIssue = &Issue{
		id: GeneratorConfigInvalidId,
		mdMsg: `
# The generator configuration is invalid

## Recognized keys
~~~yaml
indentationStyle: fourSpaces           # twoSpaces, fourSpaces or tabs
targetConfigurationFileName: _config.yml
validateProductTargets: false
manifestFileName: Package.swift
~~~

YAML, JSON and TOML files are accepted. Run ` + "`manifestgen config show`" + ` to
see the resolved values.`,
	}

	manifestOutdatedIssue = &Issue{
		id: ManifestOutdatedId,
		mdMsg: `
# The manifest is out of date

The generated region no longer matches the target configuration files.

## Things you can try
- Run ` + "`manifestgen`" + ` without ` + "`--check`" + ` and commit the result.`,
	}

	issues = map[Id]*Issue{
		configDecodeFailedIssue.Id():     configDecodeFailedIssue,
		invalidConfigurationIssue.Id():   invalidConfigurationIssue,
		manifestParseFailedIssue.Id():    manifestParseFailedIssue,
		packageLayoutIssue.Id():          packageLayoutIssue,
		manifestWriteFailedIssue.Id():    manifestWriteFailedIssue,
		generatorConfigInvalidIssue.Id(): generatorConfigInvalidIssue,
		manifestOutdatedIssue.Id():       manifestOutdatedIssue,
	}
)

// Id returns the issue's identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the issue's Markdown guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// ExtLinks returns a copy of the external links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guidance for a terminal with the given glamour style
// (e.g. "auto", "notty", "dark").
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- " + string(link) + "\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	sort.Slice(values, func(a, b int) bool { return values[a].id < values[b].id })
	return values
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
