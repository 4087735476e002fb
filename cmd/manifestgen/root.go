// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/manifestgen/manifestgen/internal/config"
	"github.com/manifestgen/manifestgen/internal/generator"
	"github.com/manifestgen/manifestgen/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions are the flags of the root command.
type rootOptions struct {
	configPath  string
	packagePath string
	dryRun      bool
	check       bool
	watch       bool
	verbose     bool
}

// newRootCommand creates the manifestgen command tree.
func newRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Generate the targets and products of a Swift package manifest",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - generate package manifest declarations") + `

manifestgen reads an optional configuration file in every directory under
Sources and Tests, and writes the matching target and product declarations
into a marked region of Package.swift. Text outside the region is kept.

` + SubtitleStyle.Render("Examples:") + `
  manifestgen                          Regenerate ./Package.swift
  manifestgen --package-path ./Kit     Regenerate ./Kit/Package.swift
  manifestgen --check                  Exit 1 when the manifest is stale
  manifestgen --watch                  Regenerate on every configuration change
  manifestgen config show              Show the resolved configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), app, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging and full error chains")
	flags.StringVar(&opts.configPath, "config", "", "generator configuration file (YAML, JSON or TOML)")

	local := rootCmd.Flags()
	local.StringVarP(&opts.packagePath, "package-path", "p", ".", "package root containing the manifest, Sources and Tests")
	local.BoolVar(&opts.dryRun, "dry-run", false, "print the manifest instead of writing it")
	local.BoolVar(&opts.check, "check", false, "exit 1 when the manifest is not up to date, without writing")
	local.BoolVarP(&opts.watch, "watch", "w", false, "regenerate whenever a target directory or configuration file changes")
	rootCmd.MarkFlagsMutuallyExclusive("dry-run", "check", "watch")

	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with a non-zero status on failure. It is
// called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := newRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
			renderError(w, err, verbose)
		}),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, app *App, opts *rootOptions) error {
	logger := app.newLogger(opts.verbose)

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return err
	}

	gen := generator.New(app.FS, cfg, generator.Options{Logger: logger})
	req := generator.Request{
		PackagePath: opts.packagePath,
		DryRun:      opts.dryRun,
		Check:       opts.check,
	}

	if opts.watch {
		return runWatch(ctx, app, gen, cfg, req, logger)
	}
	return generateOnce(ctx, app, gen, req)
}

// generateOnce runs the pipeline and reports its outcome.
func generateOnce(ctx context.Context, app *App, gen *generator.Generator, req generator.Request) error {
	outcome, err := gen.Run(ctx, req)
	if err != nil {
		return classifyError(err)
	}

	switch {
	case req.Check && outcome.Changed:
		return &ExitError{Code: 1, Err: issue.NewErrorContext().
			WithOperation("verify manifest").
			WithResource(outcome.ManifestPath).
			WithSuggestion("Run 'manifestgen' to regenerate the manifest").
			WithIssue(issue.ManifestOutdatedId).
			Wrap(errors.New("generated region is out of date")).
			BuildError()}
	case req.Check:
		fmt.Fprintf(app.stdout, "%s %s is up to date\n", SuccessStyle.Render("✓"), PathStyle.Render(outcome.ManifestPath))
	case req.DryRun:
		fmt.Fprint(app.stdout, outcome.Manifest)
	case outcome.Written:
		fmt.Fprintf(app.stdout, "%s Updated %s (%d targets, %d products)\n",
			SuccessStyle.Render("✓"), PathStyle.Render(outcome.ManifestPath), outcome.Targets, outcome.Products)
	default:
		fmt.Fprintf(app.stdout, "%s %s is up to date\n", SuccessStyle.Render("✓"), PathStyle.Render(outcome.ManifestPath))
	}
	return nil
}
