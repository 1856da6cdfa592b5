// Package prompt abstracts the terminal questions asked during setup so the
// question flow can be driven by a real terminal, by piped input, or by a
// scripted fake in tests.
package prompt

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrAborted signals the user aborted input (Ctrl+C or closed stdin).
var ErrAborted = errors.New("prompt: aborted")

// SelectConfig configures a single or multi-select question.
type SelectConfig struct {
	Message      string
	Options      []string
	Descriptions []string // optional, parallel to Options
	DefaultIndex int      // single select; -1 for none
	Defaults     []int    // multi-select; indices into Options
	Help         string
}

// ConfirmConfig configures a yes/no question.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Driver asks one question at a time and blocks until it is answered.
type Driver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

// NewDriver returns a survey-backed driver when in is a terminal and a
// numbered-menu line driver otherwise.
func NewDriver(in *os.File, out io.Writer) Driver {
	if term.IsTerminal(int(in.Fd())) {
		return NewSurveyDriver(in, out)
	}
	return NewLineDriver(in, out)
}
