// Package format is the registry of label file formats understood by
// labeleer: their file extensions, display names and whether the remote
// service accepts them for publishing.
//
// Every lookup goes through a single table so adding a format is a one-line
// change.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a label file format. The value doubles as the remote
// export format name.
type Format string

const (
	JSON      Format = "json"
	YAML      Format = "yaml"
	XLIFF     Format = "xliff"
	PO        Format = "po"
	Strings   Format = "strings"   // Apple .strings
	Android   Format = "android"   // Android strings.xml
	TS        Format = "ts"        // Qt Linguist
	XCStrings Format = "xcstrings" // Apple string catalog
)

type entry struct {
	format     Format
	name       string
	extensions []string
	publish    bool
}

// table is ordered as the formats are offered to the user.
var table = []entry{
	{JSON, "JSON", []string{".json"}, true},
	{YAML, "YAML", []string{".yaml", ".yml"}, false},
	{XLIFF, "XLIFF", []string{".xliff", ".xlf"}, false},
	{PO, "Gettext PO", []string{".po", ".pot"}, false},
	{Strings, "Apple Strings", []string{".strings"}, false},
	{Android, "Android strings.xml", []string{".xml"}, false},
	{TS, "Qt Linguist", []string{".ts"}, false},
	{XCStrings, "Apple String Catalog", []string{".xcstrings"}, false},
}

var (
	byFormat    = make(map[Format]*entry, len(table))
	byExtension = make(map[string]Format)
)

func init() {
	for i := range table {
		s := &table[i]
		byFormat[s.format] = s
		for _, ext := range s.extensions {
			if prev, dup := byExtension[ext]; dup {
				panic(fmt.Sprintf("format: extension %s registered for both %s and %s", ext, prev, s.format))
			}
			byExtension[ext] = s.format
		}
	}
}

// All returns every supported format in menu order.
func All() []Format {
	out := make([]Format, len(table))
	for i, s := range table {
		out[i] = s.format
	}
	return out
}

// Parse resolves a format identifier such as "json" or "android".
func Parse(id string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(id)))
	if _, ok := byFormat[f]; !ok {
		return "", fmt.Errorf("unknown format %q", id)
	}
	return f, nil
}

// Extensions returns the file extensions of f, canonical one first.
// The result is nil for an unknown format.
func Extensions(f Format) []string {
	s, ok := byFormat[f]
	if !ok {
		return nil
	}
	return append([]string(nil), s.extensions...)
}

// Extension returns the canonical extension of f.
func (f Format) Extension() string {
	if s, ok := byFormat[f]; ok {
		return s.extensions[0]
	}
	return ""
}

// DisplayName returns a human-readable name for f.
func (f Format) DisplayName() string {
	if s, ok := byFormat[f]; ok {
		return s.name
	}
	return string(f)
}

// SupportsPublish reports whether files of this format can be pushed to
// the remote service.
func (f Format) SupportsPublish() bool {
	s, ok := byFormat[f]
	return ok && s.publish
}

// Valid reports whether f is a registered format.
func (f Format) Valid() bool {
	_, ok := byFormat[f]
	return ok
}

// ForExtension maps an extension (with or without the leading dot, any
// case) to its format.
func ForExtension(ext string) (Format, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	f, ok := byExtension[ext]
	return f, ok
}

// FromPath infers the format of a file from its name.
func FromPath(path string) (Format, bool) {
	return ForExtension(filepath.Ext(path))
}
