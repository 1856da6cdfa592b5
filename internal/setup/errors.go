package setup

import (
	"errors"
	"fmt"
)

var (
	// ErrUserCancelled is returned by Flow.Run when the user aborts a
	// question or declines the final confirmation.
	ErrUserCancelled = errors.New("setup cancelled by user")

	// ErrInvalidConfig matches every *ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")

	ErrUnknownLanguage          = errors.New("unknown language")
	ErrIncompatibleFramework    = errors.New("incompatible framework")
	ErrUnknownHook              = errors.New("unknown hook")
	ErrUnknownOrIncompatibleMCP = errors.New("unknown or incompatible mcp")
	ErrNotConfirmed             = errors.New("configuration not confirmed")
)

// ConfigError reports the first answer Resolve rejected.
type ConfigError struct {
	Kind   error  // one of the ErrUnknown*/ErrIncompatible*/ErrNotConfirmed sentinels
	Field  string // answer field, e.g. "hooks"
	Value  string // offending value
	Detail string // optional extra context
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", e.Kind, e.Field, e.Value)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Is matches ErrInvalidConfig and the error's own kind.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig || target == e.Kind
}

func (e *ConfigError) Unwrap() error {
	return e.Kind
}
