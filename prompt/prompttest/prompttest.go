// Package prompttest provides a scripted prompt.Prompter for tests.
package prompttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/labeleer/labeleer-cli/prompt"
)

// Call records one question asked through a Script.
type Call struct {
	Kind    string // "select", "confirm", "input" or "secret"
	Message string
	Options []string
}

// Script answers prompts from a fixed queue. Select takes an int, Confirm
// a bool, Input and Secret a string; an error value is returned as-is.
// An exhausted queue behaves like closed input and returns
// prompt.ErrCancelled.
//
// Input answers go through prompt.InputOptions.Check, and rejected ones
// consume the next answer, the same way a terminal asks again.
type Script struct {
	mu      sync.Mutex
	answers []any
	calls   []Call
}

// New returns a Script with the given answers.
func New(answers ...any) *Script {
	return &Script{answers: answers}
}

// Calls returns every question asked so far.
func (s *Script) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CountKind returns how many questions of one kind were asked.
func (s *Script) CountKind(kind string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Remaining returns the number of unused answers.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

func (s *Script) next(call Call) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	if len(s.answers) == 0 {
		return nil, prompt.ErrCancelled
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

// Select implements prompt.Prompter.
func (s *Script) Select(_ context.Context, message string, options []string) (int, error) {
	a, err := s.next(Call{Kind: "select", Message: message, Options: options})
	if err != nil {
		return 0, err
	}
	i, ok := a.(int)
	if !ok {
		return 0, fmt.Errorf("prompttest: select %q answered with %T", message, a)
	}
	if i < 0 || i >= len(options) {
		return 0, fmt.Errorf("prompttest: select %q answer %d out of range (%d options)", message, i, len(options))
	}
	return i, nil
}

// Confirm implements prompt.Prompter.
func (s *Script) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	a, err := s.next(Call{Kind: "confirm", Message: message})
	if err != nil {
		return false, err
	}
	b, ok := a.(bool)
	if !ok {
		return false, fmt.Errorf("prompttest: confirm %q answered with %T", message, a)
	}
	return b, nil
}

// Input implements prompt.Prompter.
func (s *Script) Input(_ context.Context, message string, opts prompt.InputOptions) (string, error) {
	for {
		a, err := s.next(Call{Kind: "input", Message: message})
		if err != nil {
			return "", err
		}
		str, ok := a.(string)
		if !ok {
			return "", fmt.Errorf("prompttest: input %q answered with %T", message, a)
		}
		if value, err := opts.Check(str); err == nil {
			return value, nil
		}
	}
}

// Secret implements prompt.Prompter.
func (s *Script) Secret(_ context.Context, message string) (string, error) {
	a, err := s.next(Call{Kind: "secret", Message: message})
	if err != nil {
		return "", err
	}
	str, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("prompttest: secret %q answered with %T", message, a)
	}
	return str, nil
}
