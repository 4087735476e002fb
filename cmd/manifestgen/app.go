// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/manifestgen/manifestgen/internal/config"
)

type (
	// App wires CLI services and shared dependencies. Command handlers receive
	// an App reference instead of reaching for globals.
	App struct {
		Config config.Provider
		FS     afero.Fs
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		FS     afero.Fs
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App, filling unset dependencies with defaults.
func NewApp(deps Dependencies) *App {
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider(deps.FS)
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &App{
		Config: deps.Config,
		FS:     deps.FS,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// newLogger returns the stderr logger shared by one invocation.
func (a *App) newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
