// SPDX-License-Identifier: MPL-2.0

// Package targetconfig decodes the per-directory configuration files that
// describe a package's targets and products.
//
// Each immediate subdirectory of the package's Sources and Tests directories
// may contain a configuration file (by default "_config.yml"). Every field in
// these files is optional. Decoding validates the file against an embedded CUE
// schema and then maps it onto the raw records in this package; default
// values are applied lazily through the Default wrapper so that a record can
// be re-encoded without spelling out defaults.
//
// The records are deliberately shaped like the files, not like the generated
// declarations. The builder package turns them into the canonical model.
package targetconfig
