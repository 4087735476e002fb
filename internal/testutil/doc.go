// SPDX-License-Identifier: MPL-2.0

// Package testutil provides package fixtures on in-memory filesystems for
// tests. Every helper fails the test immediately on filesystem errors.
package testutil
