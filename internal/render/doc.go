// SPDX-License-Identifier: MPL-2.0

// Package render renders the canonical model as Swift package declarations.
//
// Output is a deterministic function of its input: the same targets, products
// and indentation style always produce byte-identical text. Rendering never
// fails and performs no I/O.
package render
