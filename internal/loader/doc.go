// SPDX-License-Identifier: MPL-2.0

// Package loader reads the per-directory configuration files of a package.
//
// The immediate subdirectories of Sources and Tests are listed, their
// configuration files decoded in parallel, and the records returned sorted
// by directory name. Directories without a configuration file still yield a
// record, so every directory becomes a target.
package loader
