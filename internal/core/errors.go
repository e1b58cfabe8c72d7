package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a command failure. Callers branch on the kind, never on
// the message text.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrUnknownCommand
	ErrMissingArgument
	ErrNonNumericIndex
	ErrIndexOutOfRange
	ErrEmptyDescription
	ErrMissingMarker
	ErrEmptyField
	ErrInvalidDateFormat
	ErrLineBreak
)

var errorKindNames = map[ErrorKind]string{
	ErrUnknown:           "unknown",
	ErrUnknownCommand:    "unknown_command",
	ErrMissingArgument:   "missing_argument",
	ErrNonNumericIndex:   "non_numeric_index",
	ErrIndexOutOfRange:   "index_out_of_range",
	ErrEmptyDescription:  "empty_description",
	ErrMissingMarker:     "missing_marker",
	ErrEmptyField:        "empty_field",
	ErrInvalidDateFormat: "invalid_date_format",
	ErrLineBreak:         "line_break",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// CommandError is returned for every rejected command, at parse time or (for
// index range) at execution time. Message is shown to the user verbatim.
type CommandError struct {
	Kind    ErrorKind
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

// Is matches another *CommandError with the same kind, so
// errors.Is(err, &CommandError{Kind: ErrEmptyField}) works.
func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newCommandError(kind ErrorKind, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind carried by err, or ErrUnknown when err is nil
// or not a command error.
func KindOf(err error) ErrorKind {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ErrUnknown
}

// IsCommandError reports whether err is a user-facing command failure as
// opposed to an infrastructure error such as a failed save.
func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}
