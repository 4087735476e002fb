// SPDX-License-Identifier: MPL-2.0

// Package config loads the generator configuration using Viper.
//
// Defaults are built in; a configuration file (YAML, JSON or TOML) named with
// --config is merged over them, and MANIFESTGEN_* environment variables
// override both. Files are validated against an embedded CUE schema
// (config_schema.cue) before they reach Viper, and the merged result is
// validated again in Go so that environment overrides are checked too.
package config
