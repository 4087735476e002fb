// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/manifestgen/manifestgen/pkg/targetconfig"
)

// NewPackageFs returns an in-memory filesystem with a package at root: empty
// Sources and Tests directories, the extra directories in dirs and the given
// files, keyed by absolute path.
func NewPackageFs(t testing.TB, root string, files map[string]string, dirs ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	MustMkdirAll(t, fs, filepath.Join(root, string(targetconfig.RootSources)))
	MustMkdirAll(t, fs, filepath.Join(root, string(targetconfig.RootTests)))
	for _, dir := range dirs {
		MustMkdirAll(t, fs, dir)
	}
	for name, content := range files {
		MustWriteFile(t, fs, name, content)
	}
	return fs
}

// MustMkdirAll creates a directory along with any necessary parents.
func MustMkdirAll(t testing.TB, fs afero.Fs, path string) {
	t.Helper()
	if err := fs.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path, creating parent directories.
func MustWriteFile(t testing.TB, fs afero.Fs, path, content string) {
	t.Helper()
	MustMkdirAll(t, fs, filepath.Dir(path))
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustReadFile returns the content of path.
func MustReadFile(t testing.TB, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
