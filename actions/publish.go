package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/labeleer/labeleer-cli/i18n"
	"github.com/labeleer/labeleer-cli/labels"
)

// Publish uploads the local label file. Only JSON label files can be
// published; the file is never modified.
func (d *Dispatcher) Publish(ctx context.Context) error {
	if err := d.requireJSON(); err != nil {
		return err
	}

	path := d.cfg.LocalFilePath
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	file, err := labels.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	entries := json.RawMessage(bytes.TrimSpace(data))
	if len(entries) == 0 {
		entries = json.RawMessage("{}")
	}

	d.console.Infof(i18n.T("Publishing %s to project %s..."), path, d.cfg.ProjectID)
	if err := d.gateway.Push(ctx, d.cfg.ProjectID, entries); err != nil {
		return fmt.Errorf("publishing labels: %w", err)
	}
	d.console.Successf(i18n.N("Published %d label", "Published %d labels", len(file)), len(file))
	return nil
}

func (d *Dispatcher) requireJSON() error {
	f, ok := d.cfg.Format()
	if !ok {
		return fmt.Errorf("%w: %s has an unknown format", ErrUnsupportedPublishFormat, d.cfg.LocalFilePath)
	}
	if !f.SupportsPublish() {
		return fmt.Errorf("%w: %s is %s", ErrUnsupportedPublishFormat, d.cfg.LocalFilePath, f.DisplayName())
	}
	return nil
}
