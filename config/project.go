// Package config assembles the configuration of one labeleer run: the
// project identity, the local label file it works on, and the optional
// labeleer.json project setup.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/labeleer/labeleer-cli/credentials"
	"github.com/labeleer/labeleer-cli/format"
)

var (
	// ErrNoCredentials means the run ended without a token or project ID.
	ErrNoCredentials = errors.New("no project credentials")
	// ErrNoLabelFile means the run ended without a label file.
	ErrNoLabelFile = errors.New("no label file")
)

// ProjectConfig is everything an action needs. It is built by Assemble
// and passed by value.
type ProjectConfig struct {
	ProjectID     string
	AccessToken   string
	LocalFilePath string // absolute
	// IsNew is set when the label file was created during this run.
	IsNew bool
}

// Format returns the format of the label file, if its extension is known.
func (c ProjectConfig) Format() (format.Format, bool) {
	return format.FromPath(c.LocalFilePath)
}

// String never includes the token.
func (c ProjectConfig) String() string {
	return fmt.Sprintf("project %s, token %s, file %s (new: %t)",
		c.ProjectID, credentials.MaskKey(c.AccessToken), c.LocalFilePath, c.IsNew)
}

// Assemble combines resolved credentials and a label file. It refuses
// partial input, so a returned ProjectConfig is always complete.
func Assemble(partial credentials.PartialConfig, lf LabelFile) (ProjectConfig, error) {
	if partial.AccessToken == "" || partial.ProjectID == "" {
		return ProjectConfig{}, ErrNoCredentials
	}
	if lf.Path == "" {
		return ProjectConfig{}, ErrNoLabelFile
	}

	path, err := filepath.Abs(lf.Path)
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("resolving %s: %w", lf.Path, err)
	}

	return ProjectConfig{
		ProjectID:     partial.ProjectID,
		AccessToken:   partial.AccessToken,
		LocalFilePath: path,
		IsNew:         lf.IsNew,
	}, nil
}
