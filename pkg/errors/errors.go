package errors

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInternal          = errors.New("internal error")
)

// Process exit codes used by the CLI.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitSourceError = 2
	ExitUsage       = 3
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCode maps an error returned from a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrSourceUnavailable):
		return ExitSourceError
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidConfig):
		return ExitUsage
	default:
		return ExitFailure
	}
}
