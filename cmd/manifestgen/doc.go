// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the manifestgen command line interface.
package cmd
