// SPDX-License-Identifier: MPL-2.0

package targetconfig

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/manifestgen/manifestgen/pkg/cueutil"
)

const fullSource = `
type: executable
target:
  name: Tool
  path: Sources/ToolMain
  exclude: [README.md]
  sources: [main.swift]
  packageAccess: false
  dependencies:
    - Core
    - name: ArgumentParser
      package: swift-argument-parser
    - name: Logging
      type: byName
  resources:
    - path: Assets
      rule: copy
    - path: Strings
      localization: base
  plugins:
    - name: Lint
      package: lint-plugin
products:
  - type: executable
  - name: ToolKit
    type: staticLibrary
    targets: [Tool, Core]
`

func TestDecodeSource(t *testing.T) {
	t.Parallel()

	cfg, err := DecodeSource([]byte(fullSource), "Sources/Tool/_config.yml")
	if err != nil {
		t.Fatalf("DecodeSource() error = %v", err)
	}

	if got := cfg.Type.Value(); got != TargetTypeExecutable {
		t.Errorf("Type = %q, want %q", got, TargetTypeExecutable)
	}
	if cfg.Target == nil {
		t.Fatal("Target is nil")
	}

	target := cfg.Target
	if target.Name != "Tool" || target.Path != "Sources/ToolMain" {
		t.Errorf("Name, Path = %q, %q", target.Name, target.Path)
	}
	if target.PackageAccess.Value() {
		t.Error("PackageAccess = true, want false")
	}
	if diff := cmp.Diff([]string{"README.md"}, target.Exclude); diff != "" {
		t.Errorf("Exclude mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"main.swift"}, target.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}

	wantDeps := []DependencyConfiguration{
		{Name: "Core", Type: DependencyTypeTarget},
		{Name: "ArgumentParser", Type: DependencyTypeProduct, Package: "swift-argument-parser"},
		{Name: "Logging", Type: DependencyTypeByName},
	}
	if diff := cmp.Diff(wantDeps, target.Dependencies); diff != "" {
		t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
	}

	if len(target.Resources) != 2 {
		t.Fatalf("len(Resources) = %d, want 2", len(target.Resources))
	}
	if r := target.Resources[0]; r.Rule.Value() != ResourceRuleCopy || r.Path != "Assets" {
		t.Errorf("Resources[0] = %q %q", r.Rule.Value(), r.Path)
	}
	if r := target.Resources[1]; r.Rule.Value() != ResourceRuleProcess || r.Rule.IsSet() || r.Localization != "base" {
		t.Errorf("Resources[1] = %q (set=%v) %q", r.Rule.Value(), r.Rule.IsSet(), r.Localization)
	}

	if diff := cmp.Diff([]PluginUsageConfiguration{{Name: "Lint", Package: "lint-plugin"}}, target.Plugins); diff != "" {
		t.Errorf("Plugins mismatch (-want +got):\n%s", diff)
	}

	if len(cfg.Products) != 2 {
		t.Fatalf("len(Products) = %d, want 2", len(cfg.Products))
	}
	if p := cfg.Products[0]; p.Type.Value() != ProductTypeExecutable || p.Name != "" || p.Targets != nil {
		t.Errorf("Products[0] = %+v", p)
	}
	if p := cfg.Products[1]; p.Type.Value() != ProductTypeStaticLibrary || p.Name != "ToolKit" {
		t.Errorf("Products[1] = %+v", p)
	}
}

func TestDecodeSource_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "empty file", data: ""},
		{name: "whitespace only", data: "\n  \n"},
		{name: "comment only", data: "# nothing to see\n"},
		{name: "null document", data: "~\n"},
		{name: "null fields", data: "type: ~\ntarget: ~\nproducts: ~\n"},
		{name: "unknown keys ignored", data: "flavour: vanilla\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := DecodeSource([]byte(tt.data), "Sources/A/_config.yml")
			if err != nil {
				t.Fatalf("DecodeSource() error = %v", err)
			}
			if cfg.Type.IsSet() || cfg.Type.Value() != TargetTypeRegular {
				t.Errorf("Type = %q (set=%v), want unset regular", cfg.Type.Value(), cfg.Type.IsSet())
			}
			if cfg.Target != nil {
				t.Errorf("Target = %+v, want nil", cfg.Target)
			}
			if cfg.Products != nil {
				t.Errorf("Products = %+v, want nil", cfg.Products)
			}
		})
	}
}

func TestDecodeSource_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		wantInMsg string
	}{
		{name: "malformed yaml", data: "target: [unterminated\n", wantInMsg: "Sources/A/_config.yml"},
		{name: "unknown target type", data: "type: library\n", wantInMsg: "type"},
		{name: "unknown resource rule", data: "target:\n  resources:\n    - path: a\n      rule: link\n", wantInMsg: "target.resources[0].rule"},
		{name: "resource without path", data: "target:\n  resources:\n    - rule: copy\n", wantInMsg: "Sources/A/_config.yml"},
		{name: "empty dependency name", data: "target:\n  dependencies: [\"\"]\n", wantInMsg: "Sources/A/_config.yml"},
		{name: "unknown product type", data: "products:\n  - type: framework\n", wantInMsg: "products[0].type"},
		{name: "scalar document", data: "hello\n", wantInMsg: "Sources/A/_config.yml"},
		{name: "package access not bool", data: "target:\n  packageAccess: maybe\n", wantInMsg: "packageAccess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeSource([]byte(tt.data), "Sources/A/_config.yml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrConfigDecode) {
				t.Errorf("errors.Is(err, ErrConfigDecode) = false, err = %v", err)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if decodeErr.Path != "Sources/A/_config.yml" {
				t.Errorf("Path = %q", decodeErr.Path)
			}
			if !strings.Contains(err.Error(), tt.wantInMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestDecodeSource_ValidationErrorNamesFileOnce(t *testing.T) {
	t.Parallel()

	_, err := DecodeSource([]byte("type: library\n"), "Sources/A/_config.yml")
	var ve *cueutil.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *cueutil.ValidationError in chain, got %v", err)
	}
	if n := strings.Count(err.Error(), "Sources/A/_config.yml"); n != 1 {
		t.Errorf("file path appears %d times in %q", n, err.Error())
	}
}

func TestDecodeSource_SizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte("# " + strings.Repeat("x", int(cueutil.DefaultMaxFileSize)))
	_, err := DecodeSource(data, "Sources/A/_config.yml")
	if !errors.Is(err, ErrConfigDecode) {
		t.Fatalf("expected ErrConfigDecode, got %v", err)
	}
}

func TestDecodeTest(t *testing.T) {
	t.Parallel()

	t.Run("target fields", func(t *testing.T) {
		t.Parallel()

		cfg, err := DecodeTest([]byte("target:\n  name: CoreTests\n  dependencies: [Core]\n"), "Tests/CoreTests/_config.yml")
		if err != nil {
			t.Fatalf("DecodeTest() error = %v", err)
		}
		if cfg.Target == nil || cfg.Target.Name != "CoreTests" {
			t.Fatalf("Target = %+v", cfg.Target)
		}
		if diff := cmp.Diff([]DependencyConfiguration{{Name: "Core", Type: DependencyTypeTarget}}, cfg.Target.Dependencies); diff != "" {
			t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("source-only keys are ignored", func(t *testing.T) {
		t.Parallel()

		if _, err := DecodeTest([]byte("type: executable\nproducts: [{}]\n"), "Tests/T/_config.yml"); err != nil {
			t.Errorf("DecodeTest() error = %v", err)
		}
	})
}
