// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs manifest generation when target directories or their
// configuration files change.
//
// Events within the debounce window are coalesced so the callback fires once
// with the full set of changed paths, and callbacks never overlap.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/manifestgen/manifestgen/pkg/targetconfig"
)

// Watcher monitors a package and fires a debounced callback when a change
// can affect the generated manifest. Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	patterns []string
	ignores  []string
	logger   *log.Logger
	debounce time.Duration
	baseDir  string
	started  atomic.Bool
}

// New validates cfg and registers the package root, Sources, Tests and every
// target directory below them with the underlying fsnotify watcher.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseDir := cfg.PackagePath
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve package path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: cfg.Patterns(),
		ignores:  append(DefaultIgnores(), cfg.Ignore...),
		logger:   logger,
		debounce: debounce,
		baseDir:  absBase,
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("watch: close after init failure", "err", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and the error of a broken fsnotify watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire is scheduled by time.AfterFunc. A fire that finds a run in
	// progress re-arms the timer so pending changes are not lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("watch: previous run still in progress, deferring")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		w.logger.Debug("watch: change detected", "paths", changed)
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("watch: regeneration failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("watch: close fsnotify", "err", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				continue
			}
			if !w.Relevant(rel) {
				continue
			}

			// New target directories are watched for their configuration file.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			pending[filepath.ToSlash(rel)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("watch: fsnotify error", "err", err)
		}
	}
}

// Relevant reports whether a change to rel, relative to the package root,
// can affect the generated manifest.
func (w *Watcher) Relevant(rel string) bool {
	normalized := filepath.ToSlash(rel)
	if matchAny(w.ignores, normalized) {
		return false
	}
	return matchAny(w.patterns, normalized)
}

// addDirectories registers the package root, both target roots and their
// immediate subdirectories. Configuration files live no deeper.
func (w *Watcher) addDirectories() error {
	if err := w.fsw.Add(w.baseDir); err != nil {
		return fmt.Errorf("watch: add directory %q: %w", w.baseDir, err)
	}

	for _, root := range []targetconfig.Root{targetconfig.RootSources, targetconfig.RootTests} {
		rootPath := filepath.Join(w.baseDir, string(root))
		entries, err := os.ReadDir(rootPath)
		if err != nil {
			// A missing root is reported by the generator on the next run.
			w.logger.Debug("watch: skipping target root", "path", rootPath, "err", err)
			continue
		}
		if err := w.fsw.Add(rootPath); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", rootPath, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				w.maybeAddDir(filepath.Join(rootPath, entry.Name()))
			}
		}
	}
	return nil
}

// maybeAddDir watches path when it is a non-ignored directory.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || matchAny(w.ignores, filepath.ToSlash(rel)) {
		return
	}

	if addErr := w.fsw.Add(path); addErr != nil {
		w.logger.Warn("watch: add directory", "path", path, "err", addErr)
	}
}

func matchAny(patterns []string, normalized string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}
