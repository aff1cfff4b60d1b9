// Package actions runs the interactive menu of a labeleer session:
// fetching labels from Labeleer, publishing the local file, and creating
// labels one at a time.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/labeleer/labeleer-cli/config"
	"github.com/labeleer/labeleer-cli/format"
	"github.com/labeleer/labeleer-cli/i18n"
	"github.com/labeleer/labeleer-cli/prompt"
	"github.com/labeleer/labeleer-cli/remote"
	"github.com/labeleer/labeleer-cli/ui"
)

//go:generate mockgen -destination=mock_actions/gateway_mock.go -package=mock_actions github.com/labeleer/labeleer-cli/actions Gateway

// Gateway is the part of the Labeleer API the actions use.
type Gateway interface {
	Locales(ctx context.Context, projectID string) ([]remote.Locale, error)
	Export(ctx context.Context, projectID string, f format.Format) ([]byte, error)
	Push(ctx context.Context, projectID string, entries json.RawMessage) error
}

var (
	// ErrUnresolvedFormat means no format could be chosen for a fetch.
	ErrUnresolvedFormat = errors.New("label file format could not be determined")
	// ErrUnsupportedPublishFormat means the label file is not JSON.
	ErrUnsupportedPublishFormat = errors.New("only JSON label files can be published")
)

// Action is a menu entry.
type Action int

const (
	Fetch Action = iota
	Publish
	CreateLabel
	Cancel
)

// Label returns the menu text of a.
func (a Action) Label() string {
	switch a {
	case Fetch:
		return i18n.T("Fetch labels from Labeleer")
	case Publish:
		return i18n.T("Publish local labels to Labeleer")
	case CreateLabel:
		return i18n.T("Create a label")
	case Cancel:
		return i18n.T("Exit")
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Dispatcher runs actions for one project configuration.
type Dispatcher struct {
	cfg     config.ProjectConfig
	gateway Gateway
	prompt  prompt.Prompter
	console *ui.Console
	log     *logrus.Logger

	// format chosen by the user for a file with an unknown extension
	chosen format.Format
}

// NewDispatcher returns a Dispatcher. A nil log discards diagnostics.
func NewDispatcher(cfg config.ProjectConfig, gw Gateway, p prompt.Prompter, console *ui.Console, log *logrus.Logger) *Dispatcher {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Dispatcher{cfg: cfg, gateway: gw, prompt: p, console: console, log: log}
}

// Menu returns the actions offered. Publishing is not offered for a label
// file created during this session.
func (d *Dispatcher) Menu() []Action {
	if d.cfg.IsNew {
		return []Action{Fetch, CreateLabel, Cancel}
	}
	return []Action{Fetch, Publish, CreateLabel, Cancel}
}

// Run shows the menu until the user exits. A failed fetch ends the
// session with its error; publish and create failures are reported and
// the menu is shown again. Cancelled prompts return prompt.ErrCancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	menu := d.Menu()
	options := make([]string, len(menu))
	for i, a := range menu {
		options[i] = a.Label()
	}

	for {
		idx, err := d.prompt.Select(ctx, i18n.T("What would you like to do?"), options)
		if err != nil {
			return err
		}

		switch action := menu[idx]; action {
		case Cancel:
			return nil
		case Fetch:
			if err := d.Fetch(ctx); err != nil {
				return err
			}
		case Publish, CreateLabel:
			run := d.Publish
			if action == CreateLabel {
				run = d.CreateLabels
			}
			if err := run(ctx); err != nil {
				if errors.Is(err, prompt.ErrCancelled) || ctx.Err() != nil {
					return err
				}
				d.console.Error(err.Error())
			}
		}
	}
}
