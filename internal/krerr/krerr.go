// Package krerr defines the value-typed error kinds shared across krakenkit's
// parsers and the CLI's exit-code mapping.
package krerr

import "fmt"

// Kind is a closed set of error categories. The CLI maps each Kind to an
// exit code (see Code).
type Kind int

const (
	IoError Kind = iota
	MalformedReport
	MalformedLog
	TruncatedRecord
	FormatMismatch
	UnknownTaxon
	InvalidArgument
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "IoError"
	case MalformedReport:
		return "MalformedReport"
	case MalformedLog:
		return "MalformedLog"
	case TruncatedRecord:
		return "TruncatedRecord"
	case FormatMismatch:
		return "FormatMismatch"
	case UnknownTaxon:
		return "UnknownTaxon"
	case InvalidArgument:
		return "InvalidArgument"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Error is the single error value type used throughout krakenkit. Path and
// Line/Offset are filled in when available; either may be zero.
type Error struct {
	Kind   Kind
	Path   string
	Line   int64
	Offset int64
	Reason string
	Err    error
}

func (e *Error) Error() string {
	loc := ""
	switch {
	case e.Line > 0:
		loc = fmt.Sprintf(" line %d", e.Line)
	case e.Offset > 0:
		loc = fmt.Sprintf(" offset %d", e.Offset)
	}
	path := e.Path
	if path != "" {
		path = " " + path
	}
	if e.Err != nil {
		return fmt.Sprintf("%s:%s%s: %s: %v", e.Kind, path, loc, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s:%s%s: %s", e.Kind, path, loc, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Code maps a Kind to its process exit code.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var ke *Error
	if e, ok := err.(*Error); ok {
		ke = e
	} else {
		return 1
	}
	switch ke.Kind {
	case InvalidArgument:
		return 1
	case MalformedReport, MalformedLog, TruncatedRecord, FormatMismatch, UnknownTaxon:
		return 2
	case IoError:
		return 3
	case Cancelled:
		return 130
	default:
		return 1
	}
}

func New(kind Kind, path string, reason string) *Error {
	return &Error{Kind: kind, Path: path, Reason: reason}
}

func Wrap(kind Kind, path string, reason string, err error) *Error {
	return &Error{Kind: kind, Path: path, Reason: reason, Err: err}
}

func WithLine(kind Kind, path string, line int64, reason string) *Error {
	return &Error{Kind: kind, Path: path, Line: line, Reason: reason}
}

func WithOffset(kind Kind, path string, offset int64, reason string) *Error {
	return &Error{Kind: kind, Path: path, Offset: offset, Reason: reason}
}
