package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryHost     Category = "host"
	CategoryProtocol Category = "protocol"
	CategoryStorage  Category = "storage"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location represents a file location, used for configuration errors.
type Location struct {
	File string
	Line int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// WeftError is a structured error with a code, a hint and documentation.
type WeftError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (runtime, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file the error refers to, if any.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WeftError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WeftError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a WeftError with the same code.
func (e *WeftError) Is(target error) bool {
	t, ok := target.(*WeftError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithLocation records the file the error refers to.
func (e *WeftError) WithLocation(file string, line int) *WeftError {
	e.Location = &Location{File: file, Line: line}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WeftError) WithSuggestion(s string) *WeftError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WeftError) WithDetail(d string) *WeftError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *WeftError) Wrap(err error) *WeftError {
	e.Wrapped = err
	return e
}

// New creates a WeftError from a registered error code.
func New(code string) *WeftError {
	template, ok := registry[code]
	if !ok {
		return &WeftError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WeftError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new WeftError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WeftError {
	return &WeftError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a WeftError.
func FromError(err error, code string) *WeftError {
	if err == nil {
		return nil
	}
	var we *WeftError
	if stderrors.As(err, &we) {
		return we
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is, or wraps, a WeftError with the given code.
func HasCode(err error, code string) bool {
	var we *WeftError
	for err != nil {
		if !stderrors.As(err, &we) {
			return false
		}
		if we.Code == code {
			return true
		}
		err = we.Wrapped
	}
	return false
}
