// Package ccerrors carries the compiler's error taxonomy: a typed error
// with source location, reported through a single fatal path rather than
// recovered.
package ccerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the fixed error taxonomy. All are currently fatal.
type Kind string

const (
	SyntaxError   Kind = "SyntaxError"
	ShapeError    Kind = "ShapeError"
	ConstantError Kind = "ConstantError"
	TypeError     Kind = "TypeError"
	NameError     Kind = "NameError"
)

// CompileError is the structured error the parser returns in place of the
// C source's error()-then-exit pattern. It keeps a stack trace (via
// github.com/pkg/errors) from the point it was raised.
type CompileError struct {
	Kind    Kind
	Message string
	Line    int
	cause   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Message, e.Line)
}

func (e *CompileError) Unwrap() error { return e.cause }

// New builds a CompileError of the given kind, attaching a stack trace.
func New(kind Kind, line int, format string, args ...interface{}) *CompileError {
	msg := fmt.Sprintf(format, args...)
	return &CompileError{
		Kind:    kind,
		Message: msg,
		Line:    line,
		cause:   errors.New(msg),
	}
}

func Syntax(line int, format string, args ...interface{}) *CompileError {
	return New(SyntaxError, line, format, args...)
}

func Shape(line int, format string, args ...interface{}) *CompileError {
	return New(ShapeError, line, format, args...)
}

func Constant(line int, format string, args ...interface{}) *CompileError {
	return New(ConstantError, line, format, args...)
}

func Type(line int, format string, args ...interface{}) *CompileError {
	return New(TypeError, line, format, args...)
}

func Name(line int, format string, args ...interface{}) *CompileError {
	return New(NameError, line, format, args...)
}

// StackTrace exposes the underlying pkg/errors stack for diagnostic dumps.
func (e *CompileError) StackTrace() errors.StackTrace {
	if st, ok := e.cause.(interface{ StackTrace() errors.StackTrace }); ok {
		return st.StackTrace()
	}
	return nil
}
