package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/dxlink/internal/explorer"
	"github.com/roach88/dxlink/internal/fetch"
	"github.com/roach88/dxlink/internal/filter"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Input rejected or upstream failure (bad filter, unknown entity, HTTP error)
	ExitCommandError = 2 // Command error (bad arguments, unreadable config, history not writable)
)

// Error codes reported for failures that carry no code of their own.
const (
	CodeUsage    = "USAGE"
	CodeConfig   = "CONFIG"
	CodeHistory  = "HISTORY"
	CodeOpen     = "OPEN_FAILED"
	CodeUpstream = "UPSTREAM_STATUS"
	CodeFailure  = "FAILURE"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Kind    string // Error code shown to the user; empty derives it from Err
	Message string
	Err     error // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code, kind and message.
func NewExitError(code int, kind, message string) *ExitError {
	return &ExitError{Code: code, Kind: kind, Message: message}
}

// WrapExitError wraps an existing error with an exit code and kind.
func WrapExitError(code int, kind, message string, err error) *ExitError {
	return &ExitError{Code: code, Kind: kind, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode returns the user-facing code for err: the code of a filter or
// explorer error, the kind of an ExitError, or a generic fallback.
func ErrorCode(err error) string {
	var (
		fe *filter.Error
		ee *explorer.Error
		se *fetch.StatusError
		xe *ExitError
	)
	switch {
	case errors.As(err, &fe):
		return string(fe.Code)
	case errors.As(err, &ee):
		return string(ee.Code)
	case errors.As(err, &se):
		return CodeUpstream
	case errors.As(err, &xe) && xe.Kind != "":
		return xe.Kind
	default:
		return CodeFailure
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostics and text-mode errors (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "EMPTY_VALUE", "INVALID_ENTITY", ...
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a result. Text mode prints data with fmt.Fprintln, so
// result types control their text form through String.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format. JSON errors go to Writer
// so the envelope stays on one stream; text errors go to ErrWriter.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	w := f.GetErrWriter()
	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err with its derived code.
func (f *OutputFormatter) Fail(err error) error {
	return f.Error(ErrorCode(err), err.Error(), nil)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
