package plugin

import (
	"errors"
	"fmt"
)

// Status is a monitoring plugin result. The numeric value is the process exit code.
type Status int

const (
	OK Status = iota
	Warning
	Critical
	Unknown
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "Warning"
	case Critical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Error is a failure that ends the check with a given status and a one-line message.
type Error struct {
	Status  Status
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unknownf builds an Unknown error. cause may be nil.
func Unknownf(cause error, format string, args ...interface{}) *Error {
	return &Error{
		Status:  Unknown,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// ExitCode maps an error returned by the check to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return int(OK)
	}
	var perr *Error
	if errors.As(err, &perr) {
		return int(perr.Status)
	}
	return int(Unknown)
}

// Message returns the line printed for err. Errors that are not plugin errors are reported as Unknown.
func Message(err error) string {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Error()
	}
	return fmt.Sprintf("%s: %v", Unknown, err)
}
