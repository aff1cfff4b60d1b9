package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/labeleer/labeleer-cli/format"
	"github.com/labeleer/labeleer-cli/locale"
)

// SetupFileName is the project setup file in the project root.
const SetupFileName = "labeleer.json"

// WildcardLocale marks a path holding every locale.
const WildcardLocale = "*"

// Setup is the labeleer.json project setup. When it is present it
// records where the project keeps its labels, so discovery is skipped.
//
//	{
//	  "variant": "json",
//	  "paths": [{"locale": "*", "path": "src/labels.json"}]
//	}
type Setup struct {
	Variant format.Format `json:"variant"`
	Paths   []PathEntry   `json:"paths"`
}

// PathEntry maps a locale, or WildcardLocale, to a path relative to the
// project root.
type PathEntry struct {
	Locale string `json:"locale"`
	Path   string `json:"path"`
}

// LoadSetup loads and validates labeleer.json from root.
// Returns nil if no labeleer.json exists.
func LoadSetup(root string) (*Setup, error) {
	path := filepath.Join(root, SetupFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var s Setup
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Validate checks the variant, that paths is non-empty, and every entry.
func (s *Setup) Validate() error {
	if !s.Variant.Valid() {
		return fmt.Errorf("unknown variant %q", s.Variant)
	}
	if len(s.Paths) == 0 {
		return errors.New("no paths")
	}

	seen := make(map[string]bool, len(s.Paths))
	for i, e := range s.Paths {
		if e.Path == "" {
			return fmt.Errorf("path #%d is empty", i+1)
		}
		if filepath.IsAbs(e.Path) {
			return fmt.Errorf("path #%d (%s) must be relative to the project root", i+1, e.Path)
		}
		if e.Locale != WildcardLocale {
			if _, err := locale.Classify(e.Locale); err != nil {
				return fmt.Errorf("path #%d: %w", i+1, err)
			}
		}
		if seen[e.Locale] {
			return fmt.Errorf("locale %q listed more than once", e.Locale)
		}
		seen[e.Locale] = true
	}
	return nil
}

// WildcardPath returns the absolute path of the WildcardLocale entry.
func (s *Setup) WildcardPath(root string) (string, bool) {
	for _, e := range s.Paths {
		if e.Locale == WildcardLocale {
			return filepath.Join(root, filepath.FromSlash(e.Path)), true
		}
	}
	return "", false
}

// NewSetup returns a setup with a single wildcard entry for path.
func NewSetup(root, path string) (*Setup, error) {
	f, ok := format.FromPath(path)
	if !ok {
		return nil, fmt.Errorf("unknown label file format: %s", path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, fmt.Errorf("relating %s to %s: %w", path, root, err)
	}
	return &Setup{
		Variant: f,
		Paths:   []PathEntry{{Locale: WildcardLocale, Path: filepath.ToSlash(rel)}},
	}, nil
}

// SaveSetup writes labeleer.json to root. An existing file is never
// overwritten.
func SaveSetup(root string, s *Setup) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid setup: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding setup: %w", err)
	}

	path := filepath.Join(root, SetupFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
