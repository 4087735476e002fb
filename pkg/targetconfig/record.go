// SPDX-License-Identifier: MPL-2.0

package targetconfig

import "path"

const (
	// RootSources is the directory holding source targets.
	RootSources Root = "Sources"
	// RootTests is the directory holding test targets.
	RootTests Root = "Tests"
)

type (
	// Root is a top-level target directory of a package.
	Root string

	// Record is a decoded configuration together with where it came from.
	// Directories without a configuration file still produce a Record, with
	// Present false and a zero Configuration.
	Record[C any] struct {
		Root          Root
		DirectoryName string
		FileName      string
		Configuration C
		Present       bool
	}
)

// String returns the string representation of the Root.
func (r Root) String() string { return string(r) }

// Path returns the location of the configuration file relative to the
// package root, e.g. "Sources/App/_config.yml".
func (r Record[C]) Path() string {
	return path.Join(string(r.Root), r.DirectoryName, r.FileName)
}
