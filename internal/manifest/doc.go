// SPDX-License-Identifier: MPL-2.0

// Package manifest splits a package manifest into its hand-written parts and
// the generated region, and reassembles it around newly generated text.
//
// The generated region is delimited by two marker lines:
//
//	// manifestgen:begin (generated by manifestgen; do not edit)
//	...
//	// manifestgen:end
//
// Text outside the markers is preserved byte for byte. A manifest without
// markers gets the region appended after its existing content.
package manifest
