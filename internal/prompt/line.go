package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LineDriver asks questions as numbered menus read line by line. It is used
// when stdin is not a terminal (pipes, CI).
//
// Input rules:
//   - select: a number; empty keeps the default.
//   - multi-select: comma or space separated numbers; empty keeps the
//     defaults; "-" selects nothing.
//   - confirm: y/yes or n/no; empty keeps the default.
//
// End of input aborts the flow, as does cancelling the context while a read
// is blocked.
type LineDriver struct {
	reader  *bufio.Reader
	w       io.Writer
	pending chan readResult // read still in flight after a cancelled wait
}

type readResult struct {
	line string
	err  error
}

// NewLineDriver creates a driver reading answers from r and writing menus to w.
func NewLineDriver(r io.Reader, w io.Writer) *LineDriver {
	return &LineDriver{reader: bufio.NewReader(r), w: w}
}

func (d *LineDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(cfg.Options) == 0 {
		return 0, fmt.Errorf("no options for %q", cfg.Message)
	}

	d.printMenu(cfg, func(i int) bool { return i == cfg.DefaultIndex })
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		fmt.Fprintf(d.w, "Enter number [1-%d] (default %d): ", len(cfg.Options), cfg.DefaultIndex+1)
	} else {
		fmt.Fprintf(d.w, "Enter number [1-%d]: ", len(cfg.Options))
	}

	line, err := d.readLine(ctx)
	if err != nil {
		return 0, err
	}
	if line == "" && cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		return cfg.DefaultIndex, nil
	}
	return parseChoice(line, len(cfg.Options))
}

func (d *LineDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(cfg.Options) == 0 {
		return nil, nil
	}

	defaults := make(map[int]bool, len(cfg.Defaults))
	for _, i := range cfg.Defaults {
		defaults[i] = true
	}
	d.printMenu(cfg, func(i int) bool { return defaults[i] })
	fmt.Fprintf(d.w, "Enter numbers separated by commas, '-' for none [1-%d]: ", len(cfg.Options))

	line, err := d.readLine(ctx)
	if err != nil {
		return nil, err
	}
	switch line {
	case "":
		return append([]int(nil), cfg.Defaults...), nil
	case "-":
		return []int{}, nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	seen := make(map[int]bool, len(fields))
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		idx, err := parseChoice(f, len(cfg.Options))
		if err != nil {
			return nil, err
		}
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	return out, nil
}

func (d *LineDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	hint := "y/N"
	if cfg.Default {
		hint = "Y/n"
	}
	fmt.Fprintf(d.w, "\n%s [%s]: ", cfg.Message, hint)

	line, err := d.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return cfg.Default, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q: expected y or n", line)
	}
}

// printMenu writes the question and its numbered options; marked options get
// a trailing asterisk.
func (d *LineDriver) printMenu(cfg SelectConfig, marked func(int) bool) {
	fmt.Fprintf(d.w, "\n%s\n", cfg.Message)
	for i, item := range cfg.Options {
		label := item
		if i < len(cfg.Descriptions) && cfg.Descriptions[i] != "" {
			label = fmt.Sprintf("%s - %s", item, cfg.Descriptions[i])
		}
		mark := ""
		if marked(i) {
			mark = " *"
		}
		fmt.Fprintf(d.w, "  %d) %s%s\n", i+1, label, mark)
	}
}

// readLine reads one trimmed line. A final line without newline is accepted;
// end of input with nothing read is an abort. It returns ctx's error as soon
// as ctx is done; the blocked read is then picked up by the next call.
func (d *LineDriver) readLine(ctx context.Context) (string, error) {
	if d.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := d.reader.ReadString('\n')
			ch <- readResult{line, err}
		}()
		d.pending = ch
	}

	var r readResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r = <-d.pending:
		d.pending = nil
	}

	line, err := r.line, r.err
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// parseChoice converts a 1-based menu number to an index.
func parseChoice(s string, n int) (int, error) {
	num, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || num < 1 || num > n {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(s), n)
	}
	return num - 1, nil
}
