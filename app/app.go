// Package app runs one labeleer session: credentials, label file,
// configuration summary, then the action menu.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/labeleer/labeleer-cli/actions"
	"github.com/labeleer/labeleer-cli/config"
	"github.com/labeleer/labeleer-cli/credentials"
	"github.com/labeleer/labeleer-cli/discover"
	"github.com/labeleer/labeleer-cli/i18n"
	"github.com/labeleer/labeleer-cli/prompt"
	"github.com/labeleer/labeleer-cli/remote"
	"github.com/labeleer/labeleer-cli/settings"
	"github.com/labeleer/labeleer-cli/ui"
)

// Options wires a session.
type Options struct {
	Settings settings.Settings
	Version  string

	Prompter prompt.Prompter
	Console  *ui.Console
	Log      *logrus.Logger
	// HTTPClient defaults to a client without timeout.
	HTTPClient *http.Client
}

// NewLogger returns the diagnostics logger: warnings only, or everything
// down to debug when verbose.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// Run resolves the project configuration and runs the action menu.
func Run(ctx context.Context, opts Options) error {
	if opts.Log == nil {
		opts.Log = NewLogger(io.Discard, false)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	root := opts.Settings.Root
	log := opts.Log.WithField("root", root)

	partial, err := credentials.Resolve(ctx, root, opts.Prompter)
	if err != nil {
		return err
	}
	log.WithField("source", partial.Source).Debug("credentials resolved")
	if partial.AccessToken == "" || partial.ProjectID == "" {
		return config.ErrNoCredentials
	}

	setup, err := config.LoadSetup(root)
	if err != nil {
		return err
	}
	candidates, err := labelCandidates(root, setup, opts.Console)
	if err != nil {
		return err
	}
	log.WithField("candidates", len(candidates)).Debug("label files found")

	lf, err := config.ResolveLabelFile(ctx, opts.Prompter, candidates, root)
	if err != nil {
		return err
	}
	if lf.IsNew {
		opts.Console.Successf(i18n.T("Created %s"), lf.Path)
		if setup == nil {
			if err := offerSetup(ctx, opts, lf.Path); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Assemble(partial, lf)
	if err != nil {
		return err
	}
	log.Debugf("configuration: %s", cfg)

	if err := opts.Console.Summary(i18n.T("Labeleer project"), []ui.Field{
		{Name: i18n.T("Project ID"), Value: cfg.ProjectID},
		{Name: i18n.T("Access token"), Value: credentials.MaskKey(cfg.AccessToken)},
		{Name: i18n.T("Credentials from"), Value: displayPath(root, partial.Source)},
		{Name: i18n.T("Label file"), Value: displayPath(root, cfg.LocalFilePath)},
		{Name: i18n.T("API"), Value: opts.Settings.APIURL},
	}); err != nil {
		log.WithError(err).Debug("rendering summary")
	}

	client := remote.NewClient(opts.Settings.APIURL, cfg.AccessToken,
		remote.WithHTTPClient(opts.HTTPClient),
		remote.WithLogger(opts.Log),
		remote.WithUserAgent(UserAgent(opts.Version)),
	)
	return actions.NewDispatcher(cfg, client, opts.Prompter, opts.Console, opts.Log).Run(ctx)
}

// UserAgent returns the User-Agent sent to the API.
func UserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return "labeleer-cli/" + version
}

// labelCandidates returns the label file recorded in labeleer.json when
// it exists, and discovered label files otherwise.
func labelCandidates(root string, setup *config.Setup, console *ui.Console) ([]string, error) {
	if setup != nil {
		path, ok := setup.WildcardPath(root)
		switch {
		case !ok:
			console.Warnf(i18n.T("%s only lists per-locale files, which are not supported yet; searching for a label file instead."), config.SetupFileName)
		case !fileExists(path):
			console.Warnf(i18n.T("%s points to %s, which does not exist; searching for a label file instead."), config.SetupFileName, displayPath(root, path))
		default:
			return []string{path}, nil
		}
	}
	return discover.LabelFiles(root)
}

func offerSetup(ctx context.Context, opts Options, path string) error {
	root := opts.Settings.Root
	msg := fmt.Sprintf(i18n.T("Record %s in %s for future runs?"), displayPath(root, path), config.SetupFileName)
	ok, err := opts.Prompter.Confirm(ctx, msg, true)
	if err != nil || !ok {
		return err
	}

	setup, err := config.NewSetup(root, path)
	if err != nil {
		return err
	}
	if err := config.SaveSetup(root, setup); err != nil {
		// Not fatal: the label file itself is in place.
		opts.Console.Warnf(i18n.T("Could not save %s: %v"), config.SetupFileName, err)
		return nil
	}
	opts.Console.Successf(i18n.T("Saved %s"), config.SetupFileName)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func displayPath(root, path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

// ExitCode maps the result of Run to a process exit status. Cancelling
// and finishing without credentials or label file are normal endings.
func ExitCode(err error) int {
	if err == nil || isGraceful(err) {
		return 0
	}
	return 1
}

func isGraceful(err error) bool {
	return errors.Is(err, prompt.ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, config.ErrNoLabelFile) ||
		errors.Is(err, config.ErrNoCredentials)
}

// Report prints one closing line for the result of Run.
func Report(console *ui.Console, log *logrus.Logger, err error) {
	var reqErr *remote.RequestError
	switch {
	case err == nil, errors.Is(err, prompt.ErrCancelled), errors.Is(err, context.Canceled):
		console.Plain(i18n.T("Goodbye!"))
	case errors.Is(err, config.ErrNoLabelFile):
		console.Info(i18n.T("No label file selected, nothing to do."))
	case errors.Is(err, config.ErrNoCredentials):
		console.Info(i18n.T("No access token or project ID given, nothing to do."))
	case errors.As(err, &reqErr), errors.Is(err, actions.ErrUnresolvedFormat):
		console.Error(err.Error())
	default:
		log.WithError(err).Error("unexpected failure")
		console.Error(err.Error())
	}
}
