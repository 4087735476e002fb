// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manifestgen/manifestgen/internal/config"
	"github.com/manifestgen/manifestgen/pkg/targetconfig"
)

// newConfigCommand creates the `manifestgen config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect manifestgen configuration",
		Long: `Inspect manifestgen configuration.

The generator configuration is built from defaults, the file given with
--config and ` + config.EnvPrefix + `_* environment variables, in increasing
order of precedence.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved generator configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app, opts.configPath)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the CUE schema of per-directory configuration files",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(app.stdout, targetconfig.Schema())
			return err
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, configPath string) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err != nil {
		return err
	}

	out, err := config.GenerateYAML(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = app.stdout.Write(out)
	return err
}
