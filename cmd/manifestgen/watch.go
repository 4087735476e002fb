// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/manifestgen/manifestgen/internal/config"
	"github.com/manifestgen/manifestgen/internal/generator"
	"github.com/manifestgen/manifestgen/internal/issue"
	"github.com/manifestgen/manifestgen/internal/watch"
)

// runWatch generates once, then again after every relevant change until the
// context is cancelled. Failed runs are reported and watching continues.
func runWatch(ctx context.Context, app *App, gen *generator.Generator, cfg *config.Config, req generator.Request, logger *log.Logger) error {
	regenerate := func(ctx context.Context) error {
		if err := generateOnce(ctx, app, gen, req); err != nil && !errors.Is(err, context.Canceled) {
			renderError(app.stderr, err, logger.GetLevel() == log.DebugLevel)
			fmt.Fprintln(app.stderr, WarningStyle.Render("Regeneration failed, still watching"))
		}
		return nil
	}

	w, err := watch.New(watch.Config{
		PackagePath: req.PackagePath,
		FileName:    cfg.TargetConfigurationFileName,
		Logger:      logger,
		OnChange: func(ctx context.Context, changed []string) error {
			logger.Info("change detected", "paths", changed)
			return regenerate(ctx)
		},
	})
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("watch package").
			WithResource(req.PackagePath).
			Wrap(err).
			BuildError()
	}

	if err := regenerate(ctx); err != nil {
		return err
	}

	fmt.Fprintln(app.stderr, SubtitleStyle.Render("Watching for changes, press Ctrl+C to stop"))
	return w.Run(ctx)
}
