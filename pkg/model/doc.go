// SPDX-License-Identifier: MPL-2.0

// Package model defines the canonical, validated representation of the
// targets and products declared by a package's per-directory configuration
// files.
//
// Values in this package are produced by the builder and consumed by the
// renderer. They are never mutated after construction; variant types
// (Dependency, ResourceRule, ProductKind) are closed sets implemented by
// unexported marker methods so renderers can switch over them exhaustively.
package model
