// Package status defines the process exit codes and the error type that
// carries one. A handler that cannot proceed returns a status error; main
// translates whatever surfaces from dispatch into the final exit code.
package status

import (
	"errors"
	"fmt"
)

// Code is a process exit code.
type Code int

// Exit codes reported to the operating environment.
const (
	Success     Code = 0
	NoNetwork   Code = 1
	BadArgument Code = 2
	FileError   Code = 3
	Interrupted Code = 4
	Exception   Code = 5
)

// String returns a short description of the code.
func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case NoNetwork:
		return "no network detected"
	case BadArgument:
		return "bad or missing argument"
	case FileError:
		return "problem with a file"
	case Interrupted:
		return "interrupted by user"
	case Exception:
		return "unhandled error"
	default:
		return fmt.Sprintf("unknown code %d", int(c))
	}
}

// Error is a deliberately raised condition that carries the exit code the
// process should terminate with. It propagates unmodified to main; nothing
// below the top level catches or retries it.
type Error struct {
	Code Code
	msg  string
}

func (e *Error) Error() string { return e.msg }

// BadArgf returns a BadArgument status error.
func BadArgf(format string, args ...any) error {
	return &Error{Code: BadArgument, msg: fmt.Sprintf(format, args...)}
}

// FileErrf returns a FileError status error.
func FileErrf(format string, args ...any) error {
	return &Error{Code: FileError, msg: fmt.Sprintf(format, args...)}
}

// CodeOf classifies an error surfacing from dispatch. A nil error is
// Success, a status error yields its carried code, and anything else is an
// unhandled exception.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return Exception
}
