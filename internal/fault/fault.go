// Package fault defines the error taxonomy reported by find-msvc: named,
// anticipated failures; unexpected failures wrapping an arbitrary error; and
// failures with no usable error value at all.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// Anticipated failures have a dedicated error code.
	Anticipated Kind = iota
	// Unexpected failures wrap an error that has no dedicated code.
	Unexpected
	// Unknown failures carry no error value (e.g. a panic with a non-error value).
	Unknown
)

// Error codes for anticipated failures.
const (
	CodeVSWhereNotFound = "vswhere_not_found"
	CodeVSWhereFailed   = "vswhere_failed"
	CodeVSNotFound      = "vs_not_found"
	CodeUnknown         = "unknown"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitAnticipated = -1
	ExitUnexpected  = -127
)

// Error is the single failure type surfaced at the process boundary.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error // Underlying cause, nil for anticipated and unknown failures
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for the failure.
func (e *Error) ExitCode() int {
	if e.Kind == Anticipated {
		return ExitAnticipated
	}
	return ExitUnexpected
}

// New returns an anticipated failure with the given code.
func New(code, message string) *Error {
	return &Error{Kind: Anticipated, Code: code, Message: message}
}

// Newf is New with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Classify maps any error to an *Error. A *Error anywhere in the chain is
// returned as is; anything else becomes an unexpected failure whose code is
// the Go type of the underlying error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{
		Kind:    Unexpected,
		Code:    typeName(err),
		Message: err.Error(),
		Err:     err,
	}
}

// Recovered maps a value obtained from recover(). Error values are treated as
// unexpected failures, everything else as unknown.
func Recovered(v any) *Error {
	if err, ok := v.(error); ok {
		return Classify(err)
	}
	return &Error{Kind: Unknown, Code: CodeUnknown, Message: "error"}
}

// typeName returns the type of the first error in the chain that is not an
// fmt.Errorf annotation, e.g. *fs.PathError rather than *fmt.wrapError.
func typeName(err error) string {
	for {
		name := fmt.Sprintf("%T", err)
		if !strings.HasPrefix(name, "*fmt.wrapError") {
			return name
		}
		next := errors.Unwrap(err)
		if next == nil {
			// *fmt.wrapErrors (several %w verbs) does not unwrap to a single error.
			return name
		}
		err = next
	}
}
