package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/assistkit/assistkit/internal/prompt"
	"github.com/assistkit/assistkit/internal/schema"
	"github.com/rs/zerolog"
)

// State is a step of the question flow.
type State int

const (
	StateAskLanguage State = iota
	StateAskFramework
	StateAskCommands
	StateAskHooks
	StateAskMCPs
	StateAskAnalytics
	StateAskConfirm
	StateDone
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateAskLanguage:
		return "ask-language"
	case StateAskFramework:
		return "ask-framework"
	case StateAskCommands:
		return "ask-commands"
	case StateAskHooks:
		return "ask-hooks"
	case StateAskMCPs:
		return "ask-mcps"
	case StateAskAnalytics:
		return "ask-analytics"
	case StateAskConfirm:
		return "ask-confirm"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// genericLanguage is the detector's "nothing specific found" answer; it never
// fixes the language on its own.
const genericLanguage = "common"

// Flow runs the setup questions as a state machine. Each state either takes
// its answer from Options or detection, or asks the driver, and then names
// the next state. A Flow is not safe for concurrent use.
type Flow struct {
	schema *schema.AnswerSchema
	driver prompt.Driver
	log    zerolog.Logger

	trace    []State
	prompted []State
}

// session is the per-Run state threaded through the steps.
type session struct {
	info    ProjectInfo
	opts    Options
	answers UserAnswers
	lang    *schema.Language
	fw      *schema.Framework
}

// NewFlow creates a flow asking questions through d, with choices taken from s.
func NewFlow(s *schema.AnswerSchema, d prompt.Driver) *Flow {
	return &Flow{schema: s, driver: d, log: zerolog.Nop()}
}

// WithLogger sets the diagnostic logger.
func (f *Flow) WithLogger(l zerolog.Logger) *Flow {
	f.log = l
	return f
}

// Trace returns the states visited by the last Run, ending in StateDone or
// StateCancelled.
func (f *Flow) Trace() []State {
	return append([]State(nil), f.trace...)
}

// Prompted returns the states of the last Run that asked the driver.
func (f *Flow) Prompted() []State {
	return append([]State(nil), f.prompted...)
}

// Run asks the questions in order and returns the collected answers.
//
// A question is skipped when its option is present. The language is also
// skipped when detection found a known language other than "common", and the
// framework when detection found a compatible framework other than "none".
// An abort from the driver, a cancelled ctx, or a "no" at the confirmation
// returns ErrUserCancelled. A pre-supplied language or framework that later
// questions cannot be filtered by returns a *ConfigError right away.
func (f *Flow) Run(ctx context.Context, info ProjectInfo, opts Options) (*UserAnswers, error) {
	f.trace = nil
	f.prompted = nil

	s := &session{info: info, opts: opts}
	state := StateAskLanguage

	for state != StateDone && state != StateCancelled {
		f.trace = append(f.trace, state)

		next, err := f.step(ctx, s, state)
		if err != nil {
			if isAbort(err) {
				f.log.Debug().Stringer("state", state).Err(err).Msg("setup aborted")
				next = StateCancelled
			} else {
				return nil, err
			}
		}
		state = next
	}
	f.trace = append(f.trace, state)

	if state == StateCancelled {
		return nil, ErrUserCancelled
	}
	return &s.answers, nil
}

func (f *Flow) step(ctx context.Context, s *session, state State) (State, error) {
	if err := ctx.Err(); err != nil {
		return StateCancelled, err
	}
	switch state {
	case StateAskLanguage:
		return f.askLanguage(ctx, s)
	case StateAskFramework:
		return f.askFramework(ctx, s)
	case StateAskCommands:
		return f.askCommands(ctx, s)
	case StateAskHooks:
		return f.askHooks(ctx, s)
	case StateAskMCPs:
		return f.askMCPs(ctx, s)
	case StateAskAnalytics:
		return f.askAnalytics(ctx, s)
	case StateAskConfirm:
		return f.askConfirm(ctx, s)
	default:
		return StateCancelled, fmt.Errorf("no step for state %s", state)
	}
}

func (f *Flow) askLanguage(ctx context.Context, s *session) (State, error) {
	if s.opts.Language != "" {
		lang, ok := f.schema.Language(s.opts.Language)
		if !ok {
			return StateCancelled, &ConfigError{
				Kind:   ErrUnknownLanguage,
				Field:  "language",
				Value:  s.opts.Language,
				Detail: "known: " + strings.Join(f.schema.LanguageIDs(), ", "),
			}
		}
		f.skip(StateAskLanguage, "option")
		s.answers.Language = s.opts.Language
		s.lang = lang
		return StateAskFramework, nil
	}

	detected, known := f.schema.Language(s.info.DetectedLanguage)
	if known && schema.Key(detected.ID) != genericLanguage {
		f.skip(StateAskLanguage, "detected")
		s.answers.Language = detected.ID
		s.lang = detected
		return StateAskFramework, nil
	}

	options := f.schema.LanguageIDs()
	descriptions := make([]string, len(f.schema.Languages))
	def := -1
	for i, l := range f.schema.Languages {
		descriptions[i] = l.Name
		if known && l.ID == detected.ID {
			def = i
		}
	}

	f.prompted = append(f.prompted, StateAskLanguage)
	idx, err := f.driver.Select(ctx, prompt.SelectConfig{
		Message:      "Select the project language:",
		Options:      options,
		Descriptions: descriptions,
		DefaultIndex: def,
	})
	if err != nil {
		return StateCancelled, err
	}
	if idx < 0 || idx >= len(options) {
		return StateCancelled, fmt.Errorf("language selection %d out of range", idx)
	}
	s.lang = &f.schema.Languages[idx]
	s.answers.Language = s.lang.ID
	return StateAskFramework, nil
}

func (f *Flow) askFramework(ctx context.Context, s *session) (State, error) {
	if s.opts.Framework != "" {
		fw, ok := s.lang.Framework(s.opts.Framework)
		if !ok {
			return StateCancelled, &ConfigError{
				Kind:   ErrIncompatibleFramework,
				Field:  "framework",
				Value:  s.opts.Framework,
				Detail: fmt.Sprintf("%s supports %s", s.lang.ID, strings.Join(s.lang.FrameworkIDs(), ", ")),
			}
		}
		f.skip(StateAskFramework, "option")
		s.answers.Framework = s.opts.Framework
		s.fw = fw
		return StateAskCommands, nil
	}

	if len(s.lang.Frameworks) == 0 {
		f.skip(StateAskFramework, "language has no frameworks")
		s.fw, _ = s.lang.Framework(schema.FrameworkNone)
		s.answers.Framework = schema.FrameworkNone
		return StateAskCommands, nil
	}

	detected, known := s.lang.Framework(s.info.DetectedFramework)
	if known && detected.ID != schema.FrameworkNone {
		f.skip(StateAskFramework, "detected")
		s.fw = detected
		s.answers.Framework = detected.ID
		return StateAskCommands, nil
	}

	options := s.lang.FrameworkIDs()
	descriptions := make([]string, len(options))
	for i, fw := range s.lang.Frameworks {
		descriptions[i] = fw.Name
	}
	descriptions[len(options)-1] = "No framework"

	f.prompted = append(f.prompted, StateAskFramework)
	idx, err := f.driver.Select(ctx, prompt.SelectConfig{
		Message:      fmt.Sprintf("Select the %s framework:", s.lang.Name),
		Options:      options,
		Descriptions: descriptions,
		DefaultIndex: len(options) - 1,
	})
	if err != nil {
		return StateCancelled, err
	}
	if idx < 0 || idx >= len(options) {
		return StateCancelled, fmt.Errorf("framework selection %d out of range", idx)
	}
	s.fw, _ = s.lang.Framework(options[idx])
	s.answers.Framework = s.fw.ID
	return StateAskCommands, nil
}

func (f *Flow) askCommands(ctx context.Context, s *session) (State, error) {
	if s.opts.Commands != nil {
		f.skip(StateAskCommands, "option")
		s.answers.Commands = append([]string{}, s.opts.Commands...)
		return StateAskHooks, nil
	}
	if len(s.lang.Commands) == 0 {
		f.skip(StateAskCommands, "no suggested commands")
		s.answers.Commands = []string{}
		return StateAskHooks, nil
	}

	options := s.lang.CommandIDs()
	descriptions := make([]string, len(s.lang.Commands))
	for i, c := range s.lang.Commands {
		descriptions[i] = c.Description
	}

	f.prompted = append(f.prompted, StateAskCommands)
	picked, err := f.driver.MultiSelect(ctx, prompt.SelectConfig{
		Message:      "Select slash commands to generate:",
		Options:      options,
		Descriptions: descriptions,
	})
	if err != nil {
		return StateCancelled, err
	}
	s.answers.Commands = pick(options, picked)
	return StateAskHooks, nil
}

func (f *Flow) askHooks(ctx context.Context, s *session) (State, error) {
	if s.opts.Hooks != nil {
		f.skip(StateAskHooks, "option")
		s.answers.Hooks = append([]string{}, s.opts.Hooks...)
		return StateAskMCPs, nil
	}
	if len(f.schema.Hooks) == 0 {
		f.skip(StateAskHooks, "catalog has no hooks")
		s.answers.Hooks = []string{}
		return StateAskMCPs, nil
	}

	options := f.schema.HookIDs()
	descriptions := make([]string, len(f.schema.Hooks))
	for i, h := range f.schema.Hooks {
		descriptions[i] = h.Description
	}

	f.prompted = append(f.prompted, StateAskHooks)
	picked, err := f.driver.MultiSelect(ctx, prompt.SelectConfig{
		Message:      "Select lifecycle hooks to enable:",
		Options:      options,
		Descriptions: descriptions,
	})
	if err != nil {
		return StateCancelled, err
	}
	s.answers.Hooks = pick(options, picked)
	return StateAskMCPs, nil
}

func (f *Flow) askMCPs(ctx context.Context, s *session) (State, error) {
	if s.opts.MCPs != nil {
		f.skip(StateAskMCPs, "option")
		s.answers.MCPs = append([]string{}, s.opts.MCPs...)
		return StateAskAnalytics, nil
	}

	available := f.schema.MCPsFor(s.lang.ID, s.fw.ID)
	if len(available) == 0 {
		f.skip(StateAskMCPs, "no compatible servers")
		s.answers.MCPs = []string{}
		return StateAskAnalytics, nil
	}

	options := make([]string, len(available))
	descriptions := make([]string, len(available))
	for i, m := range available {
		options[i] = m.ID
		descriptions[i] = m.Description
	}

	f.prompted = append(f.prompted, StateAskMCPs)
	picked, err := f.driver.MultiSelect(ctx, prompt.SelectConfig{
		Message:      "Select MCP servers to wire in:",
		Options:      options,
		Descriptions: descriptions,
	})
	if err != nil {
		return StateCancelled, err
	}
	s.answers.MCPs = pick(options, picked)
	return StateAskAnalytics, nil
}

func (f *Flow) askAnalytics(ctx context.Context, s *session) (State, error) {
	if s.opts.Analytics != nil {
		f.skip(StateAskAnalytics, "option")
		s.answers.Analytics = *s.opts.Analytics
		return StateAskConfirm, nil
	}

	f.prompted = append(f.prompted, StateAskAnalytics)
	ok, err := f.driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Enable usage analytics for the assistant?",
		Default: false,
	})
	if err != nil {
		return StateCancelled, err
	}
	s.answers.Analytics = ok
	return StateAskConfirm, nil
}

func (f *Flow) askConfirm(ctx context.Context, s *session) (State, error) {
	if s.opts.AssumeYes {
		f.skip(StateAskConfirm, "assume yes")
		s.answers.Confirm = true
		return StateDone, nil
	}

	f.prompted = append(f.prompted, StateAskConfirm)
	ok, err := f.driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: summary(&s.answers),
		Default: true,
	})
	if err != nil {
		return StateCancelled, err
	}
	s.answers.Confirm = ok
	if !ok {
		return StateCancelled, nil
	}
	return StateDone, nil
}

func (f *Flow) skip(state State, reason string) {
	f.log.Debug().Stringer("state", state).Str("reason", reason).Msg("question skipped")
}

// summary is the confirmation question describing what will be generated.
func summary(a *UserAnswers) string {
	return fmt.Sprintf("Generate configuration for %s/%s with %d command(s), %d hook(s), %d MCP server(s)?",
		a.Language, a.Framework, len(a.Commands), len(a.Hooks), len(a.MCPs))
}

// pick maps selected indices back to option values, ignoring out-of-range ones.
func pick(options []string, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(options) {
			out = append(out, options[i])
		}
	}
	return out
}

func isAbort(err error) bool {
	return errors.Is(err, prompt.ErrAborted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
