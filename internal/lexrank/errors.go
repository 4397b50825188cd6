package lexrank

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures by their origin.
type Kind string

const (
	// KindInput marks empty or malformed input: no sentences, ragged vectors.
	KindInput Kind = "input"
	// KindConfig marks invalid option or constraint values.
	KindConfig Kind = "config"
	// KindDependency marks failures propagated from an external collaborator
	// such as the vectorizer. They are passed through unchanged, not retried.
	KindDependency Kind = "dependency"
)

// Error is a pipeline failure tagged with the stage that produced it.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func inputError(stage string, format string, args ...any) error {
	return &Error{Kind: KindInput, Stage: stage, Err: fmt.Errorf(format, args...)}
}

func configError(stage string, format string, args ...any) error {
	return &Error{Kind: KindConfig, Stage: stage, Err: fmt.Errorf(format, args...)}
}

// NewConfigError wraps an invalid configuration value found outside this package.
func NewConfigError(stage string, format string, args ...any) error {
	return configError(stage, format, args...)
}

// NewDependencyError propagates a collaborator failure unchanged.
func NewDependencyError(stage string, err error) error {
	return &Error{Kind: KindDependency, Stage: stage, Err: err}
}

// KindOf reports the kind of err, or "" when it is not a pipeline error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
