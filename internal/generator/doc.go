// SPDX-License-Identifier: MPL-2.0

// Package generator runs the manifest generation pipeline.
//
// A run loads the per-directory configuration files of a package, builds the
// target and product model, renders it, splices the result into the manifest
// and writes the manifest back. The manifest is written at most once per run,
// through a temporary file renamed over the original, and only when its
// content changes.
package generator
