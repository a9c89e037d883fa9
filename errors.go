package moodscope

import (
	"errors"
	"fmt"
)

// ErrorKind classifies errors returned by this package.
type ErrorKind string

const (
	// KindInvalidInput is returned when text cannot be analyzed as given.
	KindInvalidInput ErrorKind = "InvalidInput"
	// KindConfiguration is returned when a lexicon or option set is unusable.
	KindConfiguration ErrorKind = "ConfigurationError"
)

// Error is the typed error returned by the analyzer and lexicon loaders.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidInput)
// works for wrapped errors.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrInvalidInput  = &Error{Kind: KindInvalidInput}
	ErrConfiguration = &Error{Kind: KindConfiguration}
)

// InvalidInputf builds a KindInvalidInput error.
func InvalidInputf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// ConfigErrorf builds a KindConfiguration error wrapping cause, which may be nil.
func ConfigErrorf(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsInvalidInput reports whether err is an input-validation error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigurationError reports whether err is a configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
