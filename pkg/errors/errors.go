// Package errors provides structured error handling for linescan.
//
// Every failure that leaves a scanner, tokenizer or loader is an *Error with a
// Type from the taxonomy below, a human-readable message, an optional cause
// and key-value details such as the offending line and column. Callers branch
// on the category with IsType; errors.Is and errors.As keep working through
// Unwrap.
//
//	err := errors.New(errors.ErrorTypeMalformedInput, "missing separator").
//	    WithDetail("line", 12)
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeMalformedInput marks a record that does not match its expected shape
	ErrorTypeMalformedInput ErrorType = "malformed_input"
	// ErrorTypeCapacityExceeded marks a record holding more values than configured
	ErrorTypeCapacityExceeded ErrorType = "capacity_exceeded"
	// ErrorTypeRaggedGrid marks grid rows of unequal length
	ErrorTypeRaggedGrid ErrorType = "ragged_grid"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeNotFound represents an unknown puzzle or part
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
)

// Error is a failure with a category, a message, an optional cause and
// details. The "line" and "column" details locate the failure in the input
// and are rendered as part of the message.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame is one frame of the call stack captured at creation
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	b.WriteString(": ")
	b.WriteString(e.Message)

	switch line, col := e.Position(); {
	case line > 0 && col > 0:
		fmt.Fprintf(&b, " (line %d, column %d)", line, col)
	case line > 0:
		fmt.Fprintf(&b, " (line %d)", line)
	case col > 0:
		fmt.Fprintf(&b, " (column %d)", col)
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail sets a detail and returns e for chaining
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{}, 2)
	}
	e.Details[key] = value
	return e
}

// Detail returns a detail value and whether it was set
func (e *Error) Detail(key string) (interface{}, bool) {
	v, ok := e.Details[key]
	return v, ok
}

// Position returns the 1-based line and column details, 0 where unset
func (e *Error) Position() (line, column int) {
	line, _ = e.Details["line"].(int)
	column, _ = e.Details["column"].(int)
	return line, column
}

// New creates an error of the given type
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message, Stack: captureStack(3)}
}

// Newf creates an error of the given type with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...), Stack: captureStack(3)}
}

// Wrap wraps err under a new type and message, keeping the stack of the
// innermost structured error. It returns nil for a nil err.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Type: errType, Message: message, Cause: err}
	var inner *Error
	if errors.As(err, &inner) {
		wrapped.Stack = inner.Stack
	} else {
		wrapped.Stack = captureStack(3)
	}
	return wrapped
}

// AtLine records the 1-based input line on the outermost structured error
// in err's chain. Other errors are returned unchanged.
func AtLine(err error, line int) error {
	var e *Error
	if errors.As(err, &e) {
		e.WithDetail("line", line)
	}
	return err
}

// IsType reports whether the outermost structured error in the chain has
// the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == errType
}

// HasType reports whether any structured error in the chain has the given type
func HasType(err error, errType ErrorType) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Type == errType {
			return true
		}
		err = e.Cause
	}
	return false
}

func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip, pcs)

	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]StackFrame, 0, n)
	for {
		f, more := frames.Next()
		stack = append(stack, StackFrame{Function: f.Function, File: f.File, Line: f.Line})
		if !more {
			break
		}
	}
	return stack
}
