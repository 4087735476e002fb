// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/manifestgen/manifestgen/internal/issue"
	"github.com/manifestgen/manifestgen/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "manifestgen"
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "MANIFESTGEN"

	keyIndentationStyle            = "indentationStyle"
	keyTargetConfigurationFileName = "targetConfigurationFileName"
	keyValidateProductTargets      = "validateProductTargets"
	keyManifestFileName            = "manifestFileName"

	// legacyTargetConfigurationKey is the previous name of
	// targetConfigurationFileName, still accepted in files.
	legacyTargetConfigurationKey = "targetConfigurationName"
)

//go:embed config_schema.cue
var configSchema string

// envBindings maps configuration keys to their environment variables.
var envBindings = map[string]string{
	keyIndentationStyle:            EnvPrefix + "_INDENTATION_STYLE",
	keyTargetConfigurationFileName: EnvPrefix + "_TARGET_CONFIGURATION_FILE_NAME",
	keyValidateProductTargets:      EnvPrefix + "_VALIDATE_PRODUCT_TARGETS",
	keyManifestFileName:            EnvPrefix + "_MANIFEST_FILE_NAME",
}

// loadWithOptions merges defaults, the optional config file and environment
// overrides. It returns the resolved file path, empty when no file was used.
func loadWithOptions(ctx context.Context, fs afero.Fs, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(keyIndentationStyle, string(defaults.IndentationStyle))
	v.SetDefault(keyTargetConfigurationFileName, defaults.TargetConfigurationFileName)
	v.SetDefault(keyValidateProductTargets, defaults.ValidateProductTargets)
	v.SetDefault(keyManifestFileName, defaults.ManifestFileName)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, "", fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		exists, err := afero.Exists(fs, opts.ConfigFilePath)
		if err != nil || !exists {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'manifestgen config show' to see the default configuration").
				WithIssue(issue.GeneratorConfigInvalidId).
				Wrap(fmt.Errorf("%w: %s", ErrConfigFileNotFound, opts.ConfigFilePath)).
				BuildError()
		}

		if err := loadFileIntoViper(v, fs, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file is valid YAML, JSON or TOML").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.GeneratorConfigInvalidId).
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", issue.WrapWithContext(fmt.Errorf("%w: %w", ErrInvalidConfig, err), "parse configuration", resolvedPath)
	}

	// Environment overrides never pass through the CUE schema.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables").
			WithIssue(issue.GeneratorConfigInvalidId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// loadFileIntoViper decodes a YAML, JSON or TOML file, validates it against
// the #Config schema and merges it into Viper.
//
// The file is decoded here rather than by Viper because Viper lowercases
// keys, and the schema is written against the camelCase keys of the file.
func loadFileIntoViper(v *viper.Viper, fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	configMap, err := decodeFile(path, data)
	if err != nil {
		return &InvalidConfigError{Path: path, FieldErrors: []error{err}}
	}
	normalize(configMap)

	if err := cueutil.ValidateValue(configSchema, configMap, "#Config", cueutil.WithFilename(path)); err != nil {
		return &InvalidConfigError{Path: path, FieldErrors: []error{err}}
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func decodeFile(path string, data []byte) (map[string]any, error) {
	configMap := map[string]any{}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &configMap); err != nil {
			return nil, err
		}
	case ".yml", ".yaml", ".json":
		if err := yaml.Unmarshal(data, &configMap); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q (use .yml, .yaml, .json or .toml)", ErrUnsupportedFormat, ext)
	}

	if configMap == nil {
		configMap = map[string]any{}
	}
	return configMap, nil
}

// normalize drops null values and renames the legacy key. An explicit
// targetConfigurationFileName wins over the legacy key.
func normalize(configMap map[string]any) {
	for key, value := range configMap {
		if value == nil {
			delete(configMap, key)
		}
	}

	if legacy, ok := configMap[legacyTargetConfigurationKey]; ok {
		delete(configMap, legacyTargetConfigurationKey)
		if _, exists := configMap[keyTargetConfigurationFileName]; !exists {
			configMap[keyTargetConfigurationFileName] = legacy
		}
	}
}

// GenerateYAML returns the YAML representation of cfg.
func GenerateYAML(cfg *Config) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(b.String()), nil
}
