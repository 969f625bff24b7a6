package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request.
type ErrorKind string

const (
	KindPreflightNotFound ErrorKind = "preflight_not_found"
	KindLaunchFailure     ErrorKind = "launch_failure"
	KindNonZeroExit       ErrorKind = "non_zero_exit"
	KindEmptyInput        ErrorKind = "empty_input"
)

// LaunchFailureCode is reported when the backend never started.
const LaunchFailureCode = -1

// AssistError is the terminal failure of a single request.
type AssistError struct {
	Kind       ErrorKind
	ExitCode   int
	Diagnostic string
	// Path is the missing file for preflight failures and the launched
	// executable otherwise.
	Path string
	Err  error
}

func (e *AssistError) Error() string {
	switch e.Kind {
	case KindPreflightNotFound:
		return e.Diagnostic
	case KindLaunchFailure:
		return fmt.Sprintf("backend failed to start: %s", e.Diagnostic)
	case KindNonZeroExit:
		if e.Diagnostic == "" {
			return fmt.Sprintf("backend exited with status %d", e.ExitCode)
		}
		return fmt.Sprintf("backend exited with status %d: %s", e.ExitCode, e.Diagnostic)
	default:
		return e.Diagnostic
	}
}

func (e *AssistError) Unwrap() error {
	return e.Err
}

// Is matches another *AssistError by kind so callers can test with the
// sentinels below.
func (e *AssistError) Is(target error) bool {
	t, ok := target.(*AssistError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Diagnostic == "" && t.ExitCode == 0
}

var (
	ErrPreflightNotFound = &AssistError{Kind: KindPreflightNotFound}
	ErrLaunchFailure     = &AssistError{Kind: KindLaunchFailure}
	ErrNonZeroExit       = &AssistError{Kind: KindNonZeroExit}
	ErrEmptyInput        = &AssistError{Kind: KindEmptyInput}
)

// AsAssistError unwraps err into an *AssistError when possible.
func AsAssistError(err error) (*AssistError, bool) {
	var target *AssistError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// DiagnosticOf returns the text the classifier should look at for err.
func DiagnosticOf(err error) string {
	if err == nil {
		return ""
	}
	if ae, ok := AsAssistError(err); ok && ae.Diagnostic != "" {
		return ae.Diagnostic
	}
	return err.Error()
}
