// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifestgen/manifestgen/internal/builder"
	"github.com/manifestgen/manifestgen/internal/generator"
	"github.com/manifestgen/manifestgen/internal/issue"
	"github.com/manifestgen/manifestgen/internal/manifest"
	"github.com/manifestgen/manifestgen/pkg/targetconfig"
)

// issueStyle is the glamour style used for catalog guidance.
const issueStyle = "auto"

// classifyError maps a pipeline failure to an ActionableError linked to its
// issue catalog entry. The cause already names the offending file.
func classifyError(err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) || errors.Is(err, context.Canceled) {
		return err
	}

	ctx := issue.NewErrorContext()
	switch {
	case errors.Is(err, targetconfig.ErrConfigDecode):
		ctx.WithOperation("decode target configuration").
			WithIssue(issue.ConfigDecodeFailedId).
			WithSuggestions(
				"Check the YAML syntax of the file",
				"Run 'manifestgen config schema' to see the accepted fields",
			)
	case errors.Is(err, builder.ErrInvalidConfiguration):
		ctx.WithOperation("build package model").
			WithIssue(issue.InvalidConfigurationId).
			WithSuggestion("Fix the reported field in the configuration file")
	case errors.Is(err, manifest.ErrManifestParse):
		ctx.WithOperation("parse manifest").
			WithIssue(issue.ManifestParseFailedId).
			WithSuggestion("Make sure the manifest has exactly one '" + manifest.BeginMarker + "' line followed by one '" + manifest.EndMarker + "' line")
	case isWriteError(err):
		ctx.WithOperation("write manifest").
			WithIssue(issue.ManifestWriteFailedId).
			WithSuggestion("Check the permissions of the package directory")
	case errors.Is(err, generator.ErrIO):
		ctx.WithOperation("read package").
			WithIssue(issue.PackageLayoutId).
			WithSuggestions(
				"Run manifestgen from the package root or pass --package-path",
				"Make sure the manifest, Sources and Tests exist",
			)
	default:
		return issue.WrapWithOperation(err, "generate manifest")
	}
	return ctx.Wrap(err).BuildError()
}

func isWriteError(err error) bool {
	var ioErr *generator.IOError
	return errors.As(err, &ioErr) && ioErr.Op == "write"
}

// renderError prints err for the user. Verbose mode adds the full error
// chain and the catalog guidance of the linked issue.
func renderError(w io.Writer, err error, verbose bool) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), err)
		return
	}

	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), ae.Format(verbose))
	if !verbose {
		if !ae.HasSuggestions() {
			fmt.Fprintln(w, SubtitleStyle.Render("Run with --verbose for the full error chain"))
		}
		return
	}
	if ae.Issue == 0 {
		return
	}

	catalogIssue := issue.Get(ae.Issue)
	if catalogIssue == nil {
		return
	}
	rendered, renderErr := catalogIssue.Render(issueStyle)
	if renderErr != nil {
		return
	}
	fmt.Fprint(w, rendered)
}
