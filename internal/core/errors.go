// internal/core/errors.go
package core

import "fmt"

// Error is a coded error. Two errors match under errors.Is when their codes agree.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError returns a copy of base carrying cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Errorf wraps base with a formatted cause.
func Errorf(base *Error, format string, args ...any) *Error {
	return WrapError(base, fmt.Errorf(format, args...))
}

var (
	// Journal data
	ErrAccountNotFound = &Error{Code: "ACCOUNT_NOT_FOUND", Message: "account not found"}
	ErrTradeNotFound   = &Error{Code: "TRADE_NOT_FOUND", Message: "trade not found"}
	ErrInvalidTrade    = &Error{Code: "INVALID_TRADE", Message: "trade is invalid"}
	ErrInvalidAccount  = &Error{Code: "INVALID_ACCOUNT", Message: "account is invalid"}

	// Requests
	ErrInvalidTimeframe = &Error{Code: "INVALID_TIMEFRAME", Message: "unknown timeframe"}
	ErrInvalidRequest   = &Error{Code: "INVALID_REQUEST", Message: "request is invalid"}
	ErrUnauthorized     = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid api key"}

	// Infrastructure
	ErrStorageFailed = &Error{Code: "STORAGE_FAILED", Message: "storage operation failed"}
	ErrNotFound      = &Error{Code: "NOT_FOUND", Message: "object not found"}
	ErrJobNotFound   = &Error{Code: "JOB_NOT_FOUND", Message: "job not found"}

	// Config
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
