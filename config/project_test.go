package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labeleer/labeleer-cli/credentials"
	"github.com/labeleer/labeleer-cli/format"
)

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.json")
	full := credentials.PartialConfig{ProjectID: "p1", AccessToken: "tok_abcdef123", Source: ".env"}

	tests := []struct {
		name    string
		partial credentials.PartialConfig
		file    LabelFile
		wantErr error
	}{
		{"complete", full, LabelFile{Path: path, IsNew: true}, nil},
		{"missing token", credentials.PartialConfig{ProjectID: "p1"}, LabelFile{Path: path}, ErrNoCredentials},
		{"missing project", credentials.PartialConfig{AccessToken: "tok"}, LabelFile{Path: path}, ErrNoCredentials},
		{"missing file", full, LabelFile{}, ErrNoLabelFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Assemble(tt.partial, tt.file)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Assemble error = %v, want %v", err, tt.wantErr)
				}
				if cfg != (ProjectConfig{}) {
					t.Fatalf("Assemble returned partial config %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			want := ProjectConfig{ProjectID: "p1", AccessToken: "tok_abcdef123", LocalFilePath: path, IsNew: true}
			if cfg != want {
				t.Fatalf("Assemble = %+v, want %+v", cfg, want)
			}
		})
	}
}

func TestProjectConfigStringAndFormat(t *testing.T) {
	cfg := ProjectConfig{ProjectID: "p1", AccessToken: "tok_live_abcdef123", LocalFilePath: "/x/labels.yml"}

	if s := cfg.String(); strings.Contains(s, "tok_live_abcdef123") {
		t.Fatalf("String() = %q leaks the token", s)
	}
	if f, ok := cfg.Format(); !ok || f != format.YAML {
		t.Fatalf("Format() = %q, %v, want yaml", f, ok)
	}
}
