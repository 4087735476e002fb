// SPDX-License-Identifier: MPL-2.0

// Package builder turns decoded per-directory configuration records into the
// canonical target and product model.
//
// Build applies directory-derived defaults and cross-field validation. It
// performs no I/O and no reordering: targets appear in the order of the input
// records, sources first and tests after.
package builder
