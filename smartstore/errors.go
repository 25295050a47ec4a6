package smartstore

import (
	"fmt"
)

// ErrorCode classifies the failures the store itself produces. Errors coming
// from a backend are returned as they are and carry no code.
type ErrorCode uint8

const (
	CodeMissingArgument    ErrorCode = iota + 1 // a required key or namespace was empty
	CodeUnsupportedValue                        // the value cannot be encoded as JSON
	CodeBackendUnavailable                      // the backend failed its probe
	CodeCorruptEntry                            // a stored string could not be decoded
)

func (c ErrorCode) String() string {
	switch c {
	case CodeMissingArgument:
		return "MissingArgument"
	case CodeUnsupportedValue:
		return "UnsupportedValue"
	case CodeBackendUnavailable:
		return "BackendUnavailable"
	case CodeCorruptEntry:
		return "CorruptEntry"
	default:
		return "Unknown"
	}
}

// Error is returned by every store operation that fails for a reason other
// than the backend.
type Error struct {
	Code ErrorCode
	Op   string // operation name, e.g. "set"
	Key  string // logical key, empty for construction errors
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("smartstore: %s", e.Code)
	if e.Op != "" {
		msg = fmt.Sprintf("smartstore: %s: %s", e.Op, e.Code)
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrMissingArgument    = &Error{Code: CodeMissingArgument}
	ErrUnsupportedValue   = &Error{Code: CodeUnsupportedValue}
	ErrBackendUnavailable = &Error{Code: CodeBackendUnavailable}
	ErrCorruptEntry       = &Error{Code: CodeCorruptEntry}
)

func newError(code ErrorCode, op, key string, cause error) *Error {
	return &Error{Code: code, Op: op, Key: key, Err: cause}
}
