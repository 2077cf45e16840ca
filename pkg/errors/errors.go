// Package errors defines the coded error type shared by the graph reader,
// the search engine, the cache and both user surfaces.
//
// Every failure that can reach a user carries a [Code]. Codes are grouped
// into a [Class] so the CLI and the HTTP service can decide how to report a
// failure without enumerating individual codes:
//
//	INVALID_*               ClassInput         bad graph text, flags or config
//	NOT_FOUND, *_NOT_FOUND  ClassNotFound      missing file or route
//	VERIFICATION_FAILED     ClassVerification  vertex set is not a clique
//	UNSUPPORTED             ClassUnsupported   format or engine not built in
//	INTERNAL_*              ClassInternal      bugs, including broken partitions
//
// Errors from other packages are wrapped rather than replaced so that
// errors.Is from the standard library keeps working on the cause:
//
//	g, err := dimacs.Read(r)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeInvalidGraph, err, "read %s", path)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable failure identifier. It appears in
// API error bodies and CLI output.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeVerification Code = "VERIFICATION_FAILED"

	ErrCodeUnsupported Code = "UNSUPPORTED"

	ErrCodeInternal  Code = "INTERNAL_ERROR"
	ErrCodeInvariant Code = "INTERNAL_INVARIANT"
)

// Class groups codes by who is at fault.
type Class int

const (
	ClassInternal Class = iota
	ClassInput
	ClassNotFound
	ClassVerification
	ClassUnsupported
)

// Class reports the group c belongs to. Unknown codes are internal.
func (c Code) Class() Class {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "INVALID_"):
		return ClassInput
	case c == ErrCodeNotFound || strings.HasSuffix(s, "_NOT_FOUND"):
		return ClassNotFound
	case c == ErrCodeVerification:
		return ClassVerification
	case c == ErrCodeUnsupported:
		return ClassUnsupported
	default:
		return ClassInternal
	}
}

// Error is a coded failure. Cause is optional.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with the given code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap attaches code and a formatted message to cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "" if err carries
// none.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// ClassOf is GetCode(err).Class(), with uncoded errors treated as internal.
func ClassOf(err error) Class {
	return GetCode(err).Class()
}

// UserMessage strips the code prefix and cause so the text can be shown to
// a person. Uncoded errors are returned verbatim.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// Invariant panics with ErrCodeInvariant. It marks states that only a bug
// can produce, such as a partition boundary outside [0, n].
func Invariant(format string, args ...any) {
	panic(New(ErrCodeInvariant, format, args...))
}
