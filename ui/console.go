// Package ui writes labeleer's status lines and tables to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

// Console prints tagged status lines:
//
//	[INFO] Fetching labels...
//	[OK] Wrote 1.2 kB to labels.json
//	[WARN] labeleer.json only lists per-locale paths
//	[ERROR] export failed: 401 Unauthorized
type Console struct {
	out     io.Writer
	info    *color.Color
	success *color.Color
	warn    *color.Color
	err     *color.Color
	heading *color.Color
}

// New returns a Console writing to out. Colors are used only when out is
// a terminal and noColor is false.
func New(out io.Writer, noColor bool) *Console {
	c := &Console{
		out:     out,
		info:    color.New(color.FgBlue),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow, color.Bold),
		err:     color.New(color.FgRed),
		heading: color.New(color.FgBlue, color.Bold),
	}

	plain := noColor || !isTerminal(out)
	for _, col := range []*color.Color{c.info, c.success, c.warn, c.err, c.heading} {
		if plain {
			col.DisableColor()
		} else {
			col.EnableColor()
		}
	}
	return c
}

// Stderr returns a Console on os.Stderr.
func Stderr(noColor bool) *Console {
	return New(os.Stderr, noColor)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer { return c.out }

func (c *Console) line(tag *color.Color, label, msg string) {
	fmt.Fprintf(c.out, "%s %s\n", tag.Sprint(label), msg)
}

// Info prints an informational line.
func (c *Console) Info(msg string) { c.line(c.info, "[INFO]", msg) }

// Infof is Info with formatting.
func (c *Console) Infof(format string, args ...any) { c.Info(fmt.Sprintf(format, args...)) }

// Success prints a line reporting a completed step.
func (c *Console) Success(msg string) { c.line(c.success, "[OK]", msg) }

// Successf is Success with formatting.
func (c *Console) Successf(format string, args ...any) { c.Success(fmt.Sprintf(format, args...)) }

// Warn prints a warning line.
func (c *Console) Warn(msg string) { c.line(c.warn, "[WARN]", msg) }

// Warnf is Warn with formatting.
func (c *Console) Warnf(format string, args ...any) { c.Warn(fmt.Sprintf(format, args...)) }

// Error prints an error line.
func (c *Console) Error(msg string) { c.line(c.err, "[ERROR]", msg) }

// Errorf is Error with formatting.
func (c *Console) Errorf(format string, args ...any) { c.Error(fmt.Sprintf(format, args...)) }

// Plain prints an untagged line.
func (c *Console) Plain(msg string) { fmt.Fprintln(c.out, msg) }

// Field is one row of a Summary.
type Field struct {
	Name  string
	Value string
}

// Summary prints a heading and a two-column table of fields.
// Empty values are shown as "-".
func (c *Console) Summary(title string, fields []Field) error {
	fmt.Fprintf(c.out, "\n%s\n", c.heading.Sprint(title))

	table := tablewriter.NewWriter(c.out)
	for _, f := range fields {
		value := f.Value
		if value == "" {
			value = "-"
		}
		if err := table.Append(f.Name, value); err != nil {
			return fmt.Errorf("rendering %s: %w", title, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering %s: %w", title, err)
	}
	fmt.Fprintln(c.out)
	return nil
}
