// Package errors provides structured error types and exit codes for uetest.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the uetest CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (tests failed, run aborted, etc.)
	ExitConfigError      = 2 // Configuration error (missing input, malformed test list, etc.)
	ExitEnvironmentError = 3 // Environment error (editor not found, results dir not writable, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment

	// KindMalformedInput marks a test-list line that cannot be turned into a test identifier.
	KindMalformedInput
	// KindExecution marks an editor invocation that could not be started or exited non-zero.
	KindExecution
	// KindResultParse marks a results file that is missing, unreadable or invalid.
	KindResultParse
	// KindEmptyMatch marks a readable results file that reports zero tests.
	KindEmptyMatch
	// KindTestFailure marks a finished run with failed tests.
	KindTestFailure
)

var kindNames = map[ErrorKind]string{
	KindRuntime:        "runtime",
	KindConfig:         "config",
	KindNotFound:       "not_found",
	KindValidation:     "validation",
	KindEnvironment:    "environment",
	KindMalformedInput: "malformed_input",
	KindExecution:      "execution",
	KindResultParse:    "result_parse",
	KindEmptyMatch:     "empty_match",
	KindTestFailure:    "test_failure",
}

// String returns the snake_case name used in reports.
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the base error type for uetest.
type Error struct {
	Kind    ErrorKind
	Message string
	ID      string // Test identifier if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("[%s] %s", e.ID, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation, KindMalformedInput:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: fmt.Sprintf(format, args...),
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindEnvironment,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates an error for a named input that does not exist.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// MalformedInput creates an error for unusable test-list input.
func MalformedInput(message string) *Error {
	return &Error{
		Kind:    KindMalformedInput,
		Message: message,
	}
}

// Execution creates an error for a failed editor invocation of id.
func Execution(id string, cause error, message string) *Error {
	return &Error{
		Kind:    KindExecution,
		ID:      id,
		Message: message,
		Cause:   cause,
	}
}

// ResultParse creates an error for an unusable results file produced for id.
func ResultParse(id string, cause error) *Error {
	msg := "results file unusable"
	if cause != nil {
		msg = fmt.Sprintf("results file unusable: %v", cause)
	}
	return &Error{
		Kind:    KindResultParse,
		ID:      id,
		Message: msg,
		Cause:   cause,
	}
}

// EmptyMatch creates an error for an invocation of id that ran zero tests.
func EmptyMatch(id string) *Error {
	return &Error{
		Kind:    KindEmptyMatch,
		ID:      id,
		Message: "no tests matched",
	}
}

// TestFailure creates an error for a finished run with failures.
func TestFailure(message string) *Error {
	return &Error{
		Kind:    KindTestFailure,
		Message: message,
	}
}

// KindOf returns the kind of the first *Error in err's chain.
// Errors that are not *Error report KindRuntime.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRuntime
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind ErrorKind) bool {
	var e *Error
	return err != nil && errors.As(err, &e) && e.Kind == kind
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitRuntimeError
}
