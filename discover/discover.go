// Package discover finds the files labeleer works with inside a project:
// environment files holding credentials and candidate label files.
//
// Both searches are read-only and return absolute, lexicographically
// sorted paths so repeated runs see the same order.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labeleer/labeleer-cli/format"
)

// LabelBaseNames are the file names (without extension) recognized as
// label files.
var LabelBaseNames = []string{"labels", "strings"}

// skipDirs contains directory names never entered while looking for label
// files: dependency caches, build output, coverage, VCS and IDE metadata.
var skipDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
	"vendor":           true,
	"Pods":             true,
	"Carthage":         true,
	".gradle":          true,
	"build":            true,
	"dist":             true,
	"out":              true,
	"target":           true,
	"bin":              true,
	"obj":              true,
	".next":            true,
	".nuxt":            true,
	".output":          true,
	"coverage":         true,
	".nyc_output":      true,
	".git":             true,
	".hg":              true,
	".svn":             true,
	".idea":            true,
	".vscode":          true,
	".fleet":           true,
	"DerivedData":      true,
	".build":           true,
	".dart_tool":       true,
	".venv":            true,
	"venv":             true,
	"__pycache__":      true,
	".cache":           true,
	".turbo":           true,
}

// IsSkippedDir reports whether a directory with this name is excluded
// from label discovery.
func IsSkippedDir(name string) bool {
	return skipDirs[name]
}

// EnvFiles lists ".env" and ".env.<suffix>" files directly in root.
func EnvFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, fmt.Errorf("reading project root %s: %w", absRoot, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !IsEnvFileName(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(absRoot, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// IsEnvFileName reports whether name is ".env" or ".env.<suffix>".
func IsEnvFileName(name string) bool {
	if name == ".env" {
		return true
	}
	return strings.HasPrefix(name, ".env.") && len(name) > len(".env.")
}

// LabelFiles recursively finds label files under root, skipping the
// directories in skipDirs. Unreadable entries are ignored.
func LabelFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("accessing project root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", absRoot)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != absRoot && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsLabelFileName(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", absRoot, err)
	}

	sort.Strings(files)
	return files, nil
}

// IsLabelFileName reports whether name is one of LabelBaseNames with an
// extension known to the format registry, e.g. "labels.json" or
// "strings.xml".
func IsLabelFileName(name string) bool {
	ext := filepath.Ext(name)
	if _, ok := format.ForExtension(ext); !ok {
		return false
	}
	base := strings.TrimSuffix(name, ext)
	for _, b := range LabelBaseNames {
		if base == b {
			return true
		}
	}
	return false
}
