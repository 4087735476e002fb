// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the offending file and
// suggestions for fixing it. Errors may also point at a catalog entry whose
// Markdown guidance the CLI renders in verbose mode.
package issue
