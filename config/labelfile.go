package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/labeleer/labeleer-cli/format"
	"github.com/labeleer/labeleer-cli/i18n"
	"github.com/labeleer/labeleer-cli/prompt"
)

// NewLabelFileBase is the base name of a label file created by labeleer.
const NewLabelFileBase = "labels"

// LabelFile is the local file a run works on.
type LabelFile struct {
	Path  string
	IsNew bool
}

// ResolveLabelFile picks the label file among discovered candidates.
//
// With no candidates the user is offered to create one in cwd; declining
// returns ErrNoLabelFile and writes nothing. A single candidate is used
// without asking. Several candidates are offered in one selection.
func ResolveLabelFile(ctx context.Context, p prompt.Prompter, candidates []string, cwd string) (LabelFile, error) {
	switch len(candidates) {
	case 0:
		return createLabelFile(ctx, p, cwd)
	case 1:
		return LabelFile{Path: candidates[0]}, nil
	}

	options := make([]string, len(candidates))
	for i, c := range candidates {
		options[i] = displayPath(cwd, c)
	}
	idx, err := p.Select(ctx, i18n.T("Several label files found. Which one should be used?"), options)
	if err != nil {
		return LabelFile{}, err
	}
	return LabelFile{Path: candidates[idx]}, nil
}

func createLabelFile(ctx context.Context, p prompt.Prompter, cwd string) (LabelFile, error) {
	ok, err := p.Confirm(ctx, i18n.T("No label file found. Create one?"), true)
	if err != nil {
		return LabelFile{}, err
	}
	if !ok {
		return LabelFile{}, ErrNoLabelFile
	}

	formats := format.All()
	options := make([]string, len(formats))
	for i, f := range formats {
		options[i] = fmt.Sprintf("%s (%s)", f.DisplayName(), f.Extension())
	}
	idx, err := p.Select(ctx, i18n.T("Which format should the label file use?"), options)
	if err != nil {
		return LabelFile{}, err
	}

	path := filepath.Join(cwd, NewLabelFileBase+formats[idx].Extension())
	if err := createEmpty(path); err != nil {
		return LabelFile{}, err
	}
	return LabelFile{Path: path, IsNew: true}, nil
}

// createEmpty creates path, failing if anything already exists there.
func createEmpty(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("creating %s: file already exists", path)
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return nil
}

func displayPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
