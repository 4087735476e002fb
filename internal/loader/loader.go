// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/manifestgen/manifestgen/pkg/targetconfig"
)

// ErrDirectoryNotFound is returned when Sources or Tests is missing.
var ErrDirectoryNotFound = errors.New("directory not found")

type (
	// Options configures a Loader.
	Options struct {
		// FileName is the per-directory configuration file name.
		FileName string
		// Jobs bounds the number of files decoded concurrently. Zero or
		// less uses GOMAXPROCS.
		Jobs int
		// Logger receives debug output. Nil discards it.
		Logger *log.Logger
	}

	// Loader reads configuration records from a package directory.
	Loader struct {
		fs     afero.Fs
		opts   Options
		logger *log.Logger
	}

	// Result holds the records of both roots, each sorted by directory name.
	Result struct {
		Sources []targetconfig.Record[targetconfig.SourceConfiguration]
		Tests   []targetconfig.Record[targetconfig.TestConfiguration]
	}

	// ReadError is a configuration file or directory that could not be read.
	ReadError struct {
		// Path is relative to the package root.
		Path string
		Err  error
	}

	decodeFunc[C any] func(data []byte, filePath string) (C, error)
)

// New returns a Loader reading from fs.
func New(fs afero.Fs, opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	return &Loader{fs: fs, opts: opts, logger: logger}
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error { return e.Err }

// Load reads every configuration under packagePath/Sources and
// packagePath/Tests. Both directories must exist.
func (l *Loader) Load(ctx context.Context, packagePath string) (*Result, error) {
	sources, err := loadRoot(ctx, l, packagePath, targetconfig.RootSources, targetconfig.DecodeSource)
	if err != nil {
		return nil, err
	}

	tests, err := loadRoot(ctx, l, packagePath, targetconfig.RootTests, targetconfig.DecodeTest)
	if err != nil {
		return nil, err
	}

	return &Result{Sources: sources, Tests: tests}, nil
}

func loadRoot[C any](ctx context.Context, l *Loader, packagePath string, root targetconfig.Root, decode decodeFunc[C]) ([]targetconfig.Record[C], error) {
	rootPath := filepath.Join(packagePath, string(root))

	dirs, err := l.subdirectories(rootPath, root)
	if err != nil {
		return nil, err
	}

	records := make([]targetconfig.Record[C], len(dirs))
	errs := make([]error, len(dirs))

	if len(dirs) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(l.opts.Jobs, len(dirs)))

		for i, dir := range dirs {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				// Each goroutine owns slot i.
				records[i], errs[i] = loadRecord(l.fs, rootPath, root, dir, l.opts.FileName, decode)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("load %s canceled: %w", root, err)
		}
	}

	// dirs is sorted, so the first failure is the lowest-sorted directory.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	present := 0
	for _, r := range records {
		if r.Present {
			present++
		}
	}
	l.logger.Debug("loaded configurations", "root", root, "directories", len(records), "files", present)

	return records, nil
}

// subdirectories returns the sorted names of the visible immediate
// subdirectories of rootPath.
func (l *Loader) subdirectories(rootPath string, root targetconfig.Root) ([]string, error) {
	isDir, err := afero.DirExists(l.fs, rootPath)
	if err != nil {
		return nil, &ReadError{Path: string(root), Err: err}
	}
	if !isDir {
		return nil, &ReadError{Path: string(root), Err: fmt.Errorf("%w: %s", ErrDirectoryNotFound, rootPath)}
	}

	entries, err := afero.ReadDir(l.fs, rootPath)
	if err != nil {
		return nil, &ReadError{Path: string(root), Err: err}
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, entry.Name())
	}
	slices.Sort(dirs)
	return dirs, nil
}

func loadRecord[C any](fs afero.Fs, rootPath string, root targetconfig.Root, dir, fileName string, decode decodeFunc[C]) (targetconfig.Record[C], error) {
	record := targetconfig.Record[C]{Root: root, DirectoryName: dir, FileName: fileName}

	data, err := afero.ReadFile(fs, filepath.Join(rootPath, dir, fileName))
	if errors.Is(err, os.ErrNotExist) {
		return record, nil
	}
	if err != nil {
		return record, &ReadError{Path: record.Path(), Err: err}
	}

	cfg, err := decode(data, record.Path())
	if err != nil {
		return record, err
	}

	record.Configuration = cfg
	record.Present = true
	return record, nil
}
