// Package prompt asks the user for input: picking from a list, yes/no
// questions, free text and masked secrets.
//
// Prompter is the seam used by the resolution pipeline and the actions;
// Terminal is the line-based implementation reading from stdin, and
// package prompttest provides a scripted one for tests.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/labeleer/labeleer-cli/i18n"
)

// ErrCancelled is returned when the user aborts a prompt (interrupt or end
// of input). It is a normal way out of the program, not a failure.
var ErrCancelled = errors.New("cancelled by user")

// Prompter is implemented by anything that can ask the user questions.
type Prompter interface {
	// Select shows options and returns the index of the chosen one.
	Select(ctx context.Context, message string, options []string) (int, error)
	// Confirm asks a yes/no question; def is used on empty input.
	Confirm(ctx context.Context, message string, def bool) (bool, error)
	// Input reads a line of text, re-asking until opts are satisfied.
	Input(ctx context.Context, message string, opts InputOptions) (string, error)
	// Secret reads a line without echoing it.
	Secret(ctx context.Context, message string) (string, error)
}

// InputOptions constrain an Input prompt.
type InputOptions struct {
	// Required rejects blank answers.
	Required bool
	// Validate, when set, rejects answers for which it returns an error.
	// The error text is shown before asking again.
	Validate func(string) error
	// Default is returned for a blank answer.
	Default string
}

// Check applies the options to a trimmed answer. It returns the value to
// use, or an error describing why the answer must be asked again.
func (o InputOptions) Check(answer string) (string, error) {
	if answer == "" && o.Default != "" {
		answer = o.Default
	}
	if answer == "" && o.Required {
		return "", errors.New(i18n.T("A value is required."))
	}
	if o.Validate != nil && answer != "" {
		if err := o.Validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

// ParseYesNo reads y/yes/n/no answers, case-insensitively.
func ParseYesNo(answer string, def bool) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// Terminal prompts on a line-oriented terminal.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal file descriptor for masked input, -1 otherwise
	tty ttyOps
}

// ttyOps are the x/term calls behind masked input.
type ttyOps struct {
	readPassword func(fd int) ([]byte, error)
	getState     func(fd int) (*term.State, error)
	restore      func(fd int, state *term.State) error
}

var realTTY = ttyOps{
	readPassword: term.ReadPassword,
	getState:     term.GetState,
	restore:      term.Restore,
}

// NewTerminal returns a Terminal reading answers from in and writing
// questions to out. Secrets are masked when in is a terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out, fd: -1, tty: realTTY}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
	}
	return t
}

// Select implements Prompter.
func (t *Terminal) Select(ctx context.Context, message string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("select %q: no options", message)
	}

	fmt.Fprintf(t.out, "\n%s\n\n", message)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprintln(t.out)

	for {
		fmt.Fprintf(t.out, "%s ", i18n.T("Enter choice (number):"))
		line, err := t.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(t.out, "  "+i18n.T("Invalid choice, enter a number between 1 and %d.")+"\n", len(options))
	}
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		fmt.Fprintf(t.out, "%s %s ", message, hint)
		line, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		if v, ok := ParseYesNo(line, def); ok {
			return v, nil
		}
		fmt.Fprintf(t.out, "  %s\n", i18n.T("Please answer yes or no."))
	}
}

// Input implements Prompter.
func (t *Terminal) Input(ctx context.Context, message string, opts InputOptions) (string, error) {
	for {
		if opts.Default != "" {
			fmt.Fprintf(t.out, "%s [%s]: ", message, opts.Default)
		} else {
			fmt.Fprintf(t.out, "%s: ", message)
		}
		line, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}
		value, err := opts.Check(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(t.out, "  %v\n", err)
			continue
		}
		return value, nil
	}
}

// Secret implements Prompter.
func (t *Terminal) Secret(ctx context.Context, message string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", message)
	if t.fd < 0 {
		line, err := t.readLine(ctx)
		return strings.TrimSpace(line), err
	}

	// ReadPassword restores echo only when it returns; a cancelled prompt
	// leaves it blocked, so the state is put back here.
	state, err := t.tty.getState(t.fd)
	if err != nil {
		return "", fmt.Errorf("reading terminal state: %w", err)
	}

	ch := make(chan lineResult, 1)
	go func() {
		b, err := t.tty.readPassword(t.fd)
		ch <- lineResult{line: string(b), err: err}
	}()

	select {
	case <-ctx.Done():
		_ = t.tty.restore(t.fd, state)
		fmt.Fprintln(t.out)
		return "", ErrCancelled
	case r := <-ch:
		fmt.Fprintln(t.out)
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("reading secret: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine waits for one line of input or for ctx to be cancelled.
// End of input without any text counts as cancellation.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := t.in.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return "", ErrCancelled
	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				if r.line == "" {
					fmt.Fprintln(t.out)
					return "", ErrCancelled
				}
				return strings.TrimRight(r.line, "\r\n"), nil
			}
			return "", fmt.Errorf("reading input: %w", r.err)
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}
