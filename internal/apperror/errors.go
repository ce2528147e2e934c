package apperror

import (
	"context"
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidInput       Kind = "InvalidInput"
	KindBackendUnreachable Kind = "BackendUnreachable"
	KindBackendError       Kind = "BackendError"
	KindParseError         Kind = "ParseError"
	KindTimeout            Kind = "Timeout"
)

// Error is the typed failure surfaced by every query operation.
type Error struct {
	Kind   Kind
	Detail string
	// StatusCode is the backend HTTP status for KindBackendError, zero otherwise.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperror.ErrTimeout) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Detail == "" && t.Err == nil
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrBackendUnreachable = &Error{Kind: KindBackendUnreachable}
	ErrBackendError       = &Error{Kind: KindBackendError}
	ErrParseError         = &Error{Kind: KindParseError}
	ErrTimeout            = &Error{Kind: KindTimeout}
)

func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Detail: fmt.Sprintf(format, args...)}
}

func BackendUnreachable(detail string, err error) *Error {
	return &Error{Kind: KindBackendUnreachable, Detail: detail, Err: err}
}

func BackendError(statusCode int, detail string) *Error {
	return &Error{Kind: KindBackendError, StatusCode: statusCode, Detail: detail}
}

func ParseError(detail string, err error) *Error {
	return &Error{Kind: KindParseError, Detail: detail, Err: err}
}

func Timeout(detail string, err error) *Error {
	return &Error{Kind: KindTimeout, Detail: detail, Err: err}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
// A bare context deadline is reported as KindTimeout.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return ""
}
