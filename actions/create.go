package actions

import (
	"context"
	"fmt"

	"github.com/labeleer/labeleer-cli/i18n"
	"github.com/labeleer/labeleer-cli/labels"
	"github.com/labeleer/labeleer-cli/locale"
	"github.com/labeleer/labeleer-cli/prompt"
)

// CreateLabels asks for a label name and a text per project locale, saves
// the label into the local file and offers to create another. Texts are
// required for reference locales only.
func (d *Dispatcher) CreateLabels(ctx context.Context) error {
	if err := d.requireJSON(); err != nil {
		return err
	}

	for {
		saved, err := d.createLabel(ctx)
		if err != nil || !saved {
			return err
		}

		again, err := d.prompt.Confirm(ctx, i18n.T("Create another label?"), false)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// createLabel runs one round. It reports false when there was nothing to
// save and the menu should be shown again.
func (d *Dispatcher) createLabel(ctx context.Context) (bool, error) {
	locales, err := d.gateway.Locales(ctx, d.cfg.ProjectID)
	if err != nil {
		return false, fmt.Errorf("fetching project locales: %w", err)
	}
	if len(locales) == 0 {
		d.console.Warnf(i18n.T("Project %s has no locales yet."), d.cfg.ProjectID)
		return false, nil
	}

	name, err := d.prompt.Input(ctx, i18n.T("Label name"), prompt.InputOptions{
		Required: true,
		Validate: validateLabelName,
	})
	if err != nil {
		return false, err
	}

	translations := make(map[string]string, len(locales))
	for _, loc := range locales {
		msg := fmt.Sprintf("%s (%s)", locale.DisplayName(loc.Locale), loc.Locale)
		if loc.IsReference {
			msg += " *"
		}
		text, err := d.prompt.Input(ctx, msg, prompt.InputOptions{Required: loc.IsReference})
		if err != nil {
			return false, err
		}
		if text != "" {
			translations[loc.Locale] = text
		}
	}
	if len(translations) == 0 {
		d.console.Warn(i18n.T("No translations entered, nothing to save."))
		return false, nil
	}

	path := d.cfg.LocalFilePath
	file, err := labels.Load(path)
	if err != nil {
		return false, err
	}
	file.Upsert(name, translations)
	if err := labels.Save(path, file); err != nil {
		return false, err
	}

	d.console.Successf(i18n.T("Saved label %s"), name)
	return true, nil
}

func validateLabelName(name string) error {
	if labels.ValidName(name) {
		return nil
	}
	return fmt.Errorf(i18n.T("A label name may contain letters, digits and the characters . _ - only. Try %q."), labels.CanonicalName(name))
}
