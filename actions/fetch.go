package actions

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/labeleer/labeleer-cli/format"
	"github.com/labeleer/labeleer-cli/i18n"
	"github.com/labeleer/labeleer-cli/labels"
)

// Fetch downloads the project's labels in the label file's format and
// replaces the local file with the response.
func (d *Dispatcher) Fetch(ctx context.Context) error {
	f, err := d.fetchFormat(ctx)
	if err != nil {
		return err
	}

	path := d.cfg.LocalFilePath
	d.console.Infof(i18n.T("Fetching %s labels for project %s..."), f.DisplayName(), d.cfg.ProjectID)

	data, err := d.gateway.Export(ctx, d.cfg.ProjectID, f)
	if err != nil {
		return fmt.Errorf("fetching labels: %w", err)
	}
	if err := labels.WriteAtomic(path, data); err != nil {
		return err
	}

	size := humanize.Bytes(uint64(len(data)))
	n, err := labels.Count(f, data)
	if err != nil {
		d.log.WithError(err).WithField("path", path).Debug("counting fetched entries")
		d.console.Successf(i18n.T("Wrote %s to %s"), size, filepath.Base(path))
		return nil
	}
	entries := fmt.Sprintf(i18n.N("%d entry", "%d entries", n), n)
	d.console.Successf(i18n.T("Wrote %s to %s (%s)"), size, filepath.Base(path), entries)
	return nil
}

// fetchFormat returns the label file's format, asking the user when the
// extension is not recognized. The answer is kept for the session.
func (d *Dispatcher) fetchFormat(ctx context.Context) (format.Format, error) {
	if f, ok := d.cfg.Format(); ok {
		return f, nil
	}
	if d.chosen != "" {
		return d.chosen, nil
	}

	all := format.All()
	options := make([]string, 0, len(all)+1)
	for _, f := range all {
		options = append(options, f.DisplayName())
	}
	options = append(options, i18n.T("None of these"))

	msg := fmt.Sprintf(i18n.T("Cannot tell the format of %s. Which format is it?"), filepath.Base(d.cfg.LocalFilePath))
	idx, err := d.prompt.Select(ctx, msg, options)
	if err != nil {
		return "", err
	}
	if idx == len(all) {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedFormat, d.cfg.LocalFilePath)
	}
	d.chosen = all[idx]
	return d.chosen, nil
}
