package explorer

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes link construction errors.
type ErrorCode string

const (
	// ErrCodeInvalidEntity indicates an entity id not in <package>_<entity> form.
	ErrCodeInvalidEntity ErrorCode = "INVALID_ENTITY"

	// ErrCodeEmptyTerm indicates a blank search-all term.
	ErrCodeEmptyTerm ErrorCode = "EMPTY_TERM"

	// ErrCodeInvalidURL indicates a URL that cannot be parsed or resolved.
	ErrCodeInvalidURL ErrorCode = "INVALID_URL"

	// ErrCodeMissingFilter indicates a table URL without a filter parameter.
	ErrCodeMissingFilter ErrorCode = "MISSING_FILTER"
)

// Error is returned for invalid link input.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is, or wraps, an explorer Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
