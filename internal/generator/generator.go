// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/manifestgen/manifestgen/internal/builder"
	"github.com/manifestgen/manifestgen/internal/config"
	"github.com/manifestgen/manifestgen/internal/loader"
	"github.com/manifestgen/manifestgen/internal/manifest"
	"github.com/manifestgen/manifestgen/internal/render"
)

const defaultManifestMode os.FileMode = 0o644

type (
	// Options configures a Generator.
	Options struct {
		// Jobs bounds concurrent configuration decoding. Zero uses GOMAXPROCS.
		Jobs int
		// Logger receives stage transitions and warnings. Nil discards them.
		Logger *log.Logger
	}

	// Request describes a single run.
	Request struct {
		// PackagePath is the package root holding the manifest, Sources and Tests.
		PackagePath string
		// DryRun runs every stage except Writing.
		DryRun bool
		// Check is a DryRun whose Outcome reports whether the manifest is stale.
		Check bool
	}

	// Outcome is the result of a successful run.
	Outcome struct {
		// ManifestPath is the manifest that was read and, unless dry, written.
		ManifestPath string
		// Manifest is the complete spliced manifest.
		Manifest string
		// Changed reports whether Manifest differs from the file on disk.
		Changed bool
		// Written reports whether the manifest file was replaced.
		Written bool
		// Targets and Products count the generated declarations.
		Targets  int
		Products int
	}

	// Generator runs the pipeline for one generator configuration. Runs must
	// not overlap.
	Generator struct {
		fs     afero.Fs
		cfg    config.Config
		logger *log.Logger
		loader *loader.Loader
		state  State
	}
)

// New returns a Generator reading and writing through fs. A nil cfg uses
// config.DefaultConfig.
func New(fs afero.Fs, cfg *config.Config, opts Options) *Generator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{
		fs:     fs,
		cfg:    *cfg,
		logger: logger,
		loader: loader.New(fs, loader.Options{
			FileName: cfg.TargetConfigurationFileName,
			Jobs:     opts.Jobs,
			Logger:   logger,
		}),
	}
}

// State returns the state the last run ended in.
func (g *Generator) State() State { return g.state }

// Run executes the pipeline. On failure the manifest is left untouched and
// the Generator ends in StateFailed.
func (g *Generator) Run(ctx context.Context, req Request) (*Outcome, error) {
	g.state = StateIdle

	outcome, err := g.run(ctx, req)
	if err != nil {
		g.transition(StateFailed)
		return nil, err
	}
	g.transition(StateDone)
	return outcome, nil
}

func (g *Generator) run(ctx context.Context, req Request) (*Outcome, error) {
	manifestPath := filepath.Join(req.PackagePath, g.cfg.ManifestFileName)

	g.transition(StateLoading)
	loaded, err := g.loader.Load(ctx, req.PackagePath)
	if err != nil {
		var readErr *loader.ReadError
		if errors.As(err, &readErr) {
			return nil, &IOError{Op: "read", Path: readErr.Path, Err: readErr.Err}
		}
		return nil, err
	}

	g.transition(StateBuilding)
	built, err := builder.Build(loaded.Sources, loaded.Tests, builder.Options{
		ValidateProductTargets: g.cfg.ValidateProductTargets,
		Logger:                 g.logger,
	})
	if err != nil {
		return nil, err
	}
	if built == nil {
		built = &builder.Result{}
	}

	g.transition(StateGenerating)
	generated := render.New(g.cfg.IndentationStyle).Render(built.Targets, built.Products, g.cfg.TargetConfigurationFileName)

	g.transition(StateSplicing)
	existing, err := afero.ReadFile(g.fs, manifestPath)
	if err != nil {
		return nil, &IOError{Op: "read", Path: manifestPath, Err: err}
	}
	spliced, err := manifest.Splice(string(existing), generated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, err)
	}

	outcome := &Outcome{
		ManifestPath: manifestPath,
		Manifest:     spliced,
		Changed:      spliced != string(existing),
		Targets:      len(built.Targets),
		Products:     len(built.Products),
	}

	if req.DryRun || req.Check || !outcome.Changed {
		g.logger.Debug("skipping write", "dryRun", req.DryRun, "check", req.Check, "changed", outcome.Changed)
		return outcome, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.transition(StateWriting)
	if err := g.writeAtomic(manifestPath, []byte(spliced)); err != nil {
		return nil, err
	}
	outcome.Written = true
	return outcome, nil
}

func (g *Generator) transition(next State) {
	g.logger.Debug("stage", "from", g.state, "to", next)
	g.state = next
}

// writeAtomic writes data to a temporary file next to path and renames it
// over path, keeping the existing file mode.
func (g *Generator) writeAtomic(path string, data []byte) (err error) {
	mode := defaultManifestMode
	if info, statErr := g.fs.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(g.fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = g.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = g.fs.Chmod(tmpName, mode); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = g.fs.Rename(tmpName, path); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
