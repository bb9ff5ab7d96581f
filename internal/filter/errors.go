package filter

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes filter errors.
type ErrorCode string

const (
	// ErrCodeInvalidField indicates an empty field name or one containing
	// characters reserved by the query language.
	ErrCodeInvalidField ErrorCode = "INVALID_FIELD"

	// ErrCodeDuplicateField indicates the same field was added twice.
	ErrCodeDuplicateField ErrorCode = "DUPLICATE_FIELD"

	// ErrCodeInvalidPair indicates a CLI argument not in field=value form.
	ErrCodeInvalidPair ErrorCode = "INVALID_PAIR"

	// ErrCodeEmptyValue indicates a value that is empty after normalization.
	ErrCodeEmptyValue ErrorCode = "EMPTY_VALUE"

	// ErrCodeEmptyMember indicates a comma list with an empty member.
	ErrCodeEmptyMember ErrorCode = "EMPTY_MEMBER"

	// ErrCodeReservedChar indicates a value containing the ";" separator.
	ErrCodeReservedChar ErrorCode = "RESERVED_CHAR"

	// ErrCodeNullValue indicates a null entry reached Build unstripped.
	ErrCodeNullValue ErrorCode = "NULL_VALUE"
)

// Error is returned for invalid filter input.
type Error struct {
	Code    ErrorCode
	Field   string
	Value   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is, or wraps, a filter Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

func newError(code ErrorCode, field, value, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}
