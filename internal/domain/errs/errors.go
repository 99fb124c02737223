// Package errs defines the error taxonomy shared across the scoring
// pipeline. InputError rejects a batch up front, ConfigError fails startup,
// ProviderError is recovered per lead and never aborts a run.
package errs

import (
	"errors"
	"fmt"
)

// InputError indicates malformed or incomplete batch input. The batch is
// rejected before scoring begins.
type InputError struct {
	msg string
	err error
}

// NewInputError creates an InputError with a formatted message.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// WrapInputError wraps an underlying error as an InputError.
func WrapInputError(err error, format string, args ...any) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...), err: err}
}

func (e *InputError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("input error: %s: %v", e.msg, e.err)
	}
	return "input error: " + e.msg
}

func (e *InputError) Unwrap() error { return e.err }

// ConfigError indicates invalid scoring configuration. Detected at startup
// and fatal for the process.
type ConfigError struct {
	msg string
}

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string { return "config error: " + e.msg }

// ProviderError indicates a validation provider failure for one channel of
// one lead. Scoring continues with an unknown verdict for that channel.
type ProviderError struct {
	Channel string
	err     error
}

// NewProviderError wraps a provider failure for the given channel.
func NewProviderError(channel string, err error) *ProviderError {
	return &ProviderError{Channel: channel, err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %s: %v", e.Channel, e.err)
}

func (e *ProviderError) Unwrap() error { return e.err }

// IsInputError reports whether err is or wraps an InputError.
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsProviderError reports whether err is or wraps a ProviderError.
func IsProviderError(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}
