// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/manifestgen/manifestgen/internal/issue"
	"github.com/manifestgen/manifestgen/pkg/cueutil"
	"github.com/manifestgen/manifestgen/pkg/model"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}
	return fs
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.IndentationStyle != model.IndentFourSpaces {
		t.Errorf("IndentationStyle = %q, want fourSpaces", cfg.IndentationStyle)
	}
	if cfg.TargetConfigurationFileName != "_config.yml" {
		t.Errorf("TargetConfigurationFileName = %q, want _config.yml", cfg.TargetConfigurationFileName)
	}
	if cfg.ValidateProductTargets {
		t.Error("ValidateProductTargets should default to false")
	}
	if cfg.ManifestFileName != "Package.swift" {
		t.Errorf("ManifestFileName = %q, want Package.swift", cfg.ManifestFileName)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig() is invalid: %v", errs)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    map[string]string
		path     string
		expected *Config
	}{
		{
			name:     "no config file uses defaults",
			expected: DefaultConfig(),
		},
		{
			name:  "yaml file",
			files: map[string]string{"/pkg/manifestgen.yml": "indentationStyle: tabs\ntargetConfigurationFileName: target.yml\n"},
			path:  "/pkg/manifestgen.yml",
			expected: &Config{
				IndentationStyle:            model.IndentTabs,
				TargetConfigurationFileName: "target.yml",
				ManifestFileName:            "Package.swift",
			},
		},
		{
			name:  "json file",
			files: map[string]string{"/pkg/manifestgen.json": `{"indentationStyle": "twoSpaces", "validateProductTargets": true}`},
			path:  "/pkg/manifestgen.json",
			expected: &Config{
				IndentationStyle:            model.IndentTwoSpaces,
				TargetConfigurationFileName: "_config.yml",
				ValidateProductTargets:      true,
				ManifestFileName:            "Package.swift",
			},
		},
		{
			name:  "toml file",
			files: map[string]string{"/pkg/manifestgen.toml": "indentationStyle = \"twoSpaces\"\nmanifestFileName = \"Package@swift-5.9.swift\"\n"},
			path:  "/pkg/manifestgen.toml",
			expected: &Config{
				IndentationStyle:            model.IndentTwoSpaces,
				TargetConfigurationFileName: "_config.yml",
				ManifestFileName:            "Package@swift-5.9.swift",
			},
		},
		{
			name:  "legacy target configuration key",
			files: map[string]string{"/c.yaml": "targetConfigurationName: legacy.yml\n"},
			path:  "/c.yaml",
			expected: &Config{
				IndentationStyle:            model.IndentFourSpaces,
				TargetConfigurationFileName: "legacy.yml",
				ManifestFileName:            "Package.swift",
			},
		},
		{
			name:  "current key wins over legacy key",
			files: map[string]string{"/c.yaml": "targetConfigurationName: legacy.yml\ntargetConfigurationFileName: current.yml\n"},
			path:  "/c.yaml",
			expected: &Config{
				IndentationStyle:            model.IndentFourSpaces,
				TargetConfigurationFileName: "current.yml",
				ManifestFileName:            "Package.swift",
			},
		},
		{
			name:     "empty file uses defaults",
			files:    map[string]string{"/c.yml": ""},
			path:     "/c.yml",
			expected: DefaultConfig(),
		},
		{
			name:     "null values use defaults",
			files:    map[string]string{"/c.yml": "indentationStyle: ~\n"},
			path:     "/c.yml",
			expected: DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := NewProvider(memFs(t, tt.files))
			cfg, err := provider.Load(context.Background(), LoadOptions{ConfigFilePath: tt.path})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		files      map[string]string
		path       string
		wantErr    error
		validation bool
	}{
		{name: "missing file", path: "/nope.yml", wantErr: ErrConfigFileNotFound},
		{name: "unsupported extension", files: map[string]string{"/c.ini": "x=1"}, path: "/c.ini", wantErr: ErrUnsupportedFormat},
		{name: "malformed yaml", files: map[string]string{"/c.yml": "indentationStyle: [tabs\n"}, path: "/c.yml", wantErr: ErrInvalidConfig},
		{name: "malformed toml", files: map[string]string{"/c.toml": "indentationStyle = \n"}, path: "/c.toml", wantErr: ErrInvalidConfig},
		{
			name:       "unknown indentation style",
			files:      map[string]string{"/c.yml": "indentationStyle: threeSpaces\n"},
			path:       "/c.yml",
			wantErr:    ErrInvalidConfig,
			validation: true,
		},
		{
			name:       "unknown key",
			files:      map[string]string{"/c.yml": "indentStyle: tabs\n"},
			path:       "/c.yml",
			wantErr:    ErrInvalidConfig,
			validation: true,
		},
		{
			name:       "file name with directory",
			files:      map[string]string{"/c.yml": "manifestFileName: sub/Package.swift\n"},
			path:       "/c.yml",
			wantErr:    ErrInvalidConfig,
			validation: true,
		},
		{
			name:       "wrong type",
			files:      map[string]string{"/c.toml": "validateProductTargets = \"yes\"\n"},
			path:       "/c.toml",
			wantErr:    ErrInvalidConfig,
			validation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewProvider(memFs(t, tt.files)).Load(context.Background(), LoadOptions{ConfigFilePath: tt.path})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T", err)
			}
			if ae.Resource != tt.path {
				t.Errorf("Resource = %q, want %q", ae.Resource, tt.path)
			}
			if ae.Issue != issue.GeneratorConfigInvalidId {
				t.Errorf("Issue = %d, want GeneratorConfigInvalidId", ae.Issue)
			}

			var ve *cueutil.ValidationError
			if got := errors.As(err, &ve); got != tt.validation {
				t.Errorf("errors.As(*cueutil.ValidationError) = %v, want %v (err: %v)", got, tt.validation, err)
			}
		})
	}
}

//nolint:paralleltest // t.Setenv
func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MANIFESTGEN_INDENTATION_STYLE", "twoSpaces")
	t.Setenv("MANIFESTGEN_VALIDATE_PRODUCT_TARGETS", "true")

	fs := memFs(t, map[string]string{"/c.yml": "indentationStyle: tabs\nmanifestFileName: Other.swift\n"})
	cfg, err := NewProvider(fs).Load(context.Background(), LoadOptions{ConfigFilePath: "/c.yml"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := &Config{
		IndentationStyle:            model.IndentTwoSpaces,
		TargetConfigurationFileName: "_config.yml",
		ValidateProductTargets:      true,
		ManifestFileName:            "Other.swift",
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

//nolint:paralleltest // t.Setenv
func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	t.Setenv("MANIFESTGEN_INDENTATION_STYLE", "spaces")

	_, err := NewProvider(afero.NewMemMapFs()).Load(context.Background(), LoadOptions{})
	if !errors.Is(err, model.ErrInvalidIndentationStyle) {
		t.Fatalf("Load() error = %v, want ErrInvalidIndentationStyle", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

//nolint:paralleltest // t.Setenv
func TestLoad_UnparsableEnvironmentOverride(t *testing.T) {
	t.Setenv("MANIFESTGEN_VALIDATE_PRODUCT_TARGETS", "maybe")

	_, err := NewProvider(afero.NewMemMapFs()).Load(context.Background(), LoadOptions{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %T, want *issue.ActionableError", err)
	}
	if ae.Operation != "parse configuration" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "parse configuration")
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider(afero.NewMemMapFs()).Load(ctx, LoadOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateYAML(t *testing.T) {
	t.Parallel()

	out, err := GenerateYAML(DefaultConfig())
	if err != nil {
		t.Fatalf("GenerateYAML() error = %v", err)
	}

	expected := strings.Join([]string{
		"indentationStyle: fourSpaces",
		"targetConfigurationFileName: _config.yml",
		"validateProductTargets: false",
		"manifestFileName: Package.swift",
		"",
	}, "\n")
	if diff := cmp.Diff(expected, string(out)); diff != "" {
		t.Errorf("GenerateYAML() mismatch (-want +got):\n%s", diff)
	}
}
