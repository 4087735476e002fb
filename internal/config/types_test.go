// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/manifestgen/manifestgen/pkg/model"
)

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "tabs", mutate: func(c *Config) { c.IndentationStyle = model.IndentTabs }},
		{name: "bad style", mutate: func(c *Config) { c.IndentationStyle = "3" }, wantErr: model.ErrInvalidIndentationStyle},
		{name: "empty target file name", mutate: func(c *Config) { c.TargetConfigurationFileName = "" }, wantErr: ErrInvalidFileName},
		{name: "blank manifest name", mutate: func(c *Config) { c.ManifestFileName = "  " }, wantErr: ErrInvalidFileName},
		{name: "nested manifest name", mutate: func(c *Config) { c.ManifestFileName = "a/Package.swift" }, wantErr: ErrInvalidFileName},
		{name: "backslash", mutate: func(c *Config) { c.TargetConfigurationFileName = `a\b.yml` }, wantErr: ErrInvalidFileName},
		{name: "dot dot", mutate: func(c *Config) { c.ManifestFileName = ".." }, wantErr: ErrInvalidFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			valid, errs := cfg.IsValid()
			if tt.wantErr == nil {
				if !valid {
					t.Errorf("IsValid() = false, errs = %v", errs)
				}
				return
			}
			if valid || len(errs) != 1 {
				t.Fatalf("IsValid() = %v, %v; want one error", valid, errs)
			}
			if !errors.Is(errs[0], ErrInvalidConfig) || !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("error %v should wrap ErrInvalidConfig and %v", errs[0], tt.wantErr)
			}
		})
	}
}

func TestInvalidConfigError_Error(t *testing.T) {
	t.Parallel()

	one := &InvalidConfigError{Path: "c.yml", FieldErrors: []error{errors.New("boom")}}
	if got, want := one.Error(), "invalid config c.yml: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	two := &InvalidConfigError{FieldErrors: []error{errors.New("a"), errors.New("b")}}
	if got, want := two.Error(), "invalid config: 2 field error(s)\n  a\n  b"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
