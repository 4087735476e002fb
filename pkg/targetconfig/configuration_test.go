// SPDX-License-Identifier: MPL-2.0

package targetconfig

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDependencyConfiguration_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    DependencyConfiguration
		wantErr error
	}{
		{name: "bare string", data: "Core", want: DependencyConfiguration{Name: "Core", Type: DependencyTypeTarget}},
		{name: "object without package", data: "{name: Core}", want: DependencyConfiguration{Name: "Core", Type: DependencyTypeTarget}},
		{
			name: "object with package infers product",
			data: "{name: NIO, package: swift-nio}",
			want: DependencyConfiguration{Name: "NIO", Type: DependencyTypeProduct, Package: "swift-nio"},
		},
		{
			name: "explicit product without package",
			data: "{name: Kit, type: product}",
			want: DependencyConfiguration{Name: "Kit", Type: DependencyTypeProduct},
		},
		{name: "by name", data: "{name: Kit, type: byName}", want: DependencyConfiguration{Name: "Kit", Type: DependencyTypeByName}},
		{name: "missing name", data: "{package: swift-nio}", wantErr: ErrMissingName},
		{name: "unknown type", data: "{name: Kit, type: module}", wantErr: ErrInvalidEnumValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got DependencyConfiguration
			err := yaml.Unmarshal([]byte(tt.data), &got)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("unset uses source default", func(t *testing.T) {
		t.Parallel()

		var d Default[ResourceRule, ResourceRule]
		if d.Value() != ResourceRuleProcess || d.IsSet() || !d.IsZero() {
			t.Errorf("Value=%q IsSet=%v IsZero=%v", d.Value(), d.IsSet(), d.IsZero())
		}
	})

	t.Run("explicit default is still zero", func(t *testing.T) {
		t.Parallel()

		d := NewDefault[ResourceRule, ResourceRule](ResourceRuleProcess)
		if !d.IsSet() || !d.IsZero() {
			t.Errorf("IsSet=%v IsZero=%v", d.IsSet(), d.IsZero())
		}
	})

	t.Run("non-enum source", func(t *testing.T) {
		t.Parallel()

		var d Default[bool, DefaultTrue]
		if !d.Value() {
			t.Error("Value() = false, want true")
		}
		if err := yaml.Unmarshal([]byte("false"), &d); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if d.Value() || d.IsZero() {
			t.Errorf("Value=%v IsZero=%v after decoding false", d.Value(), d.IsZero())
		}
	})

	t.Run("invalid enum is rejected", func(t *testing.T) {
		t.Parallel()

		var d Default[TargetType, TargetType]
		err := yaml.Unmarshal([]byte("library"), &d)
		if !errors.Is(err, ErrInvalidEnumValue) {
			t.Errorf("error = %v, want ErrInvalidEnumValue", err)
		}
	})
}

func TestSourceConfiguration_MarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  SourceConfiguration
		want string
	}{
		{name: "zero value", cfg: SourceConfiguration{}, want: "{}\n"},
		{
			name: "explicit default is omitted",
			cfg:  SourceConfiguration{Type: NewDefault[TargetType, TargetType](TargetTypeRegular)},
			want: "{}\n",
		},
		{
			name: "non-default is written",
			cfg:  SourceConfiguration{Type: NewDefault[TargetType, TargetType](TargetTypeExecutable)},
			want: "type: executable\n",
		},
		{
			name: "dependencies keep their short form",
			cfg: SourceConfiguration{Target: &TargetConfiguration{Dependencies: []DependencyConfiguration{
				{Name: "Core", Type: DependencyTypeTarget},
				{Name: "NIO", Type: DependencyTypeProduct, Package: "swift-nio"},
			}}},
			want: "target:\n    dependencies:\n        - Core\n        - name: NIO\n          type: product\n          package: swift-nio\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := yaml.Marshal(tt.cfg)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Marshal() =\n%s\nwant\n%s", out, tt.want)
			}
		})
	}
}

func TestRecord_Path(t *testing.T) {
	t.Parallel()

	r := Record[TestConfiguration]{Root: RootTests, DirectoryName: "CoreTests", FileName: "_config.yml"}
	if got, want := r.Path(), "Tests/CoreTests/_config.yml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
