// Package labels reads and writes Labeleer JSON label files.
//
// A label file maps label names to records holding per-locale texts:
//
//	{
//	  "greeting": {
//	    "translations": { "en_US": "Hi", "de_DE": "Hallo" }
//	  }
//	}
//
// Fields of a record other than "translations" are kept as they are.
package labels

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// ErrMalformed is returned for content that is not a label file.
var ErrMalformed = errors.New("malformed label file")

const translationsField = "translations"

// Label is one record of a label file.
type Label struct {
	Translations map[string]string
	// extra holds the record's other fields, verbatim.
	extra map[string]json.RawMessage
}

// File is a parsed label file keyed by label name.
type File map[string]*Label

// Load reads and parses the label file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses label file content. Empty or whitespace-only content is
// an empty file.
func Parse(data []byte) (File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return File{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	f := make(File, len(raw))
	for name, rec := range raw {
		l, err := parseLabel(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: label %q: %v", ErrMalformed, name, err)
		}
		f[name] = l
	}
	return f, nil
}

func parseLabel(data json.RawMessage) (*Label, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, errors.New("record is not an object")
	}

	tr, ok := fields[translationsField]
	if !ok {
		return nil, errors.New(`missing "translations"`)
	}
	var translations map[string]string
	if err := json.Unmarshal(tr, &translations); err != nil || translations == nil {
		return nil, errors.New(`"translations" must map locales to strings`)
	}
	delete(fields, translationsField)

	l := &Label{Translations: translations}
	if len(fields) > 0 {
		l.extra = fields
	}
	return l, nil
}

// MarshalJSON writes the record with its fields in sorted order.
func (l *Label) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(l.extra)+1)
	for k, v := range l.extra {
		fields[k] = v
	}
	translations := l.Translations
	if translations == nil {
		translations = map[string]string{}
	}
	fields[translationsField] = translations

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Names returns the label names in sorted order.
func (f File) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Upsert sets the given translations of label name, creating the label
// if needed. Locales not in translations are left as they are.
func (f File) Upsert(name string, translations map[string]string) {
	l, ok := f[name]
	if !ok || l == nil {
		l = &Label{}
		f[name] = l
	}
	if l.Translations == nil {
		l.Translations = make(map[string]string, len(translations))
	}
	for loc, text := range translations {
		l.Translations[loc] = text
	}
}

// Marshal encodes f with two-space indentation, sorted keys, no HTML
// escaping and a trailing newline.
func Marshal(f File) ([]byte, error) {
	if f == nil {
		f = File{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]*Label(f)); err != nil {
		return nil, fmt.Errorf("encoding labels: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes f to path, replacing the file atomically.
func Save(path string, f File) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	return WriteAtomic(path, data)
}

var invalidRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// CanonicalName coerces name into a valid label name: spaces become dots,
// then every run of other disallowed characters becomes a dash.
//
//	"Main menu/title" -> "Main.menu-title"
func CanonicalName(name string) string {
	name = strings.ReplaceAll(name, " ", ".")
	return invalidRe.ReplaceAllString(name, "-")
}

// ValidName reports whether name is non-empty and already canonical.
func ValidName(name string) bool {
	return name != "" && CanonicalName(name) == name
}
