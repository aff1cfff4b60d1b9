// Package credentials finds the Labeleer project ID and access token for
// a run, from the project's .env files or by asking the user.
package credentials

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/labeleer/labeleer-cli/discover"
	"github.com/labeleer/labeleer-cli/i18n"
	"github.com/labeleer/labeleer-cli/prompt"
)

// SourcePrompt is the PartialConfig.Source of interactively entered
// credentials.
const SourcePrompt = "prompt"

// PartialConfig is a project identity without a label file.
type PartialConfig struct {
	ProjectID   string
	AccessToken string
	// Source is the env file the values came from, or SourcePrompt.
	Source string
}

// String never includes the token.
func (p PartialConfig) String() string {
	return fmt.Sprintf("project %s (token %s, from %s)", p.ProjectID, MaskKey(p.AccessToken), p.Source)
}

// Resolve determines the project identity:
//
//  1. list .env files in root; none: ask the user
//  2. several: the user picks one
//  3. scan it for LABELEER*TOKEN and LABELEER*PROJECT_ID assignments;
//     several of either: the user picks one of each; none of either:
//     ask the user
//
// Asking the user always succeeds, empty answers included. Only prompt
// and I/O failures are returned as errors.
func Resolve(ctx context.Context, root string, p prompt.Prompter) (PartialConfig, error) {
	files, err := discover.EnvFiles(root)
	if err != nil {
		return PartialConfig{}, err
	}
	if len(files) == 0 {
		return ask(ctx, p)
	}

	path := files[0]
	if len(files) > 1 {
		options := make([]string, len(files))
		for i, f := range files {
			options[i] = relTo(root, f)
		}
		idx, err := p.Select(ctx, i18n.T("Several env files found. Which one holds the Labeleer credentials?"), options)
		if err != nil {
			return PartialConfig{}, err
		}
		path = files[idx]
	}

	env, err := ScanEnvFile(path)
	if err != nil {
		return PartialConfig{}, err
	}
	if len(env.Tokens) == 0 || len(env.ProjectIDs) == 0 {
		return ask(ctx, p)
	}

	token, err := pick(ctx, p, fmt.Sprintf(i18n.T("Several access tokens found in %s. Which one?"), filepath.Base(path)), env.Tokens, true)
	if err != nil {
		return PartialConfig{}, err
	}
	projectID, err := pick(ctx, p, fmt.Sprintf(i18n.T("Several project IDs found in %s. Which one?"), filepath.Base(path)), env.ProjectIDs, false)
	if err != nil {
		return PartialConfig{}, err
	}

	return PartialConfig{ProjectID: projectID, AccessToken: token, Source: path}, nil
}

// pick returns the only assignment's value, or asks for one.
func pick(ctx context.Context, p prompt.Prompter, message string, as []Assignment, secret bool) (string, error) {
	if len(as) == 1 {
		return as[0].Value, nil
	}
	options := make([]string, len(as))
	for i, a := range as {
		value := a.Value
		if secret {
			value = MaskKey(value)
		}
		options[i] = fmt.Sprintf("%s=%s (line %d)", a.Key, value, a.Line)
	}
	idx, err := p.Select(ctx, message, options)
	if err != nil {
		return "", err
	}
	return as[idx].Value, nil
}

func ask(ctx context.Context, p prompt.Prompter) (PartialConfig, error) {
	token, err := p.Secret(ctx, i18n.T("Labeleer access token"))
	if err != nil {
		return PartialConfig{}, err
	}
	projectID, err := p.Input(ctx, i18n.T("Labeleer project ID"), prompt.InputOptions{})
	if err != nil {
		return PartialConfig{}, err
	}
	return PartialConfig{ProjectID: projectID, AccessToken: token, Source: SourcePrompt}, nil
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
