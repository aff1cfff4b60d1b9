// labeleer keeps a project's localization labels in sync with Labeleer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/labeleer/labeleer-cli/app"
	"github.com/labeleer/labeleer-cli/i18n"
	"github.com/labeleer/labeleer-cli/prompt"
	"github.com/labeleer/labeleer-cli/settings"
	"github.com/labeleer/labeleer-cli/ui"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// sessionError carries the result of a session that has already been
// reported to the user.
type sessionError struct {
	err error
}

func (e *sessionError) Error() string { return e.err.Error() }
func (e *sessionError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "labeleer",
		Short: "Sync localization labels with Labeleer",
		Long: `labeleer synchronizes a project's label file with the Labeleer
translation service.

It reads the project ID and access token from a .env file in the project
root (LABELEER_PROJECT_ID, LABELEER_ACCESS_TOKEN) or asks for them, finds
the label file (labels.* or strings.* in a known format) and offers to:

  fetch     download the project's labels into the local file
  publish   upload the local JSON label file
  create    add labels interactively, one text per project locale

Settings can also be given as LABELEER_* environment variables, for
example LABELEER_API_URL for --api-url.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd)
		},
	}

	settings.AddFlags(root.PersistentFlags())

	root.AddCommand(newVersionCmd())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	var se *sessionError
	if errors.As(err, &se) {
		os.Exit(app.ExitCode(se.err))
	}
	if err != nil {
		ui.Stderr(os.Getenv("NO_COLOR") != "").Error(err.Error())
		os.Exit(1)
	}
}

func runSession(cmd *cobra.Command) error {
	s, err := settings.Load(cmd.Flags())
	if err != nil {
		return err
	}
	i18n.Init(s.Lang)

	console := ui.Stderr(s.NoColor)
	log := app.NewLogger(os.Stderr, s.Verbose)

	err = app.Run(cmd.Context(), app.Options{
		Settings: s,
		Version:  version,
		Prompter: prompt.NewTerminal(os.Stdin, os.Stderr),
		Console:  console,
		Log:      log,
	})
	app.Report(console, log, err)
	if err != nil {
		return &sessionError{err: err}
	}
	return nil
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "labeleer version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}

	return cmd
}
