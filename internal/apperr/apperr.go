// Package apperr holds the failure kinds that cross the HTTP boundary.
// Anything that is not an *Error is treated as unexpected by the handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks an absent resource or an empty page.
	ErrNotFound = errors.New("not found")
	// ErrUnprocessable marks malformed input or a failed lookup the caller supplied.
	ErrUnprocessable = errors.New("unprocessable")
)

type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code, message string, err error) *Error {
	return &Error{Status: status, Code: code, Message: message, Err: err}
}

func NotFound(err error) *Error {
	if err == nil {
		err = ErrNotFound
	} else if !errors.Is(err, ErrNotFound) {
		err = fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return New(http.StatusNotFound, "not_found", "", err)
}

func Unprocessable(err error) *Error {
	if err == nil {
		err = ErrUnprocessable
	} else if !errors.Is(err, ErrUnprocessable) {
		err = fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}
	return New(http.StatusUnprocessableEntity, "unprocessable", "", err)
}

// Auth builds an authorization failure. code is machine readable
// (token_expired, invalid_claims, ...) and description is shown to clients.
func Auth(status int, code, description string) *Error {
	return New(status, code, description, nil)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsAuth reports whether err is an authorization failure.
func IsAuth(err error) bool {
	e, ok := As(err)
	return ok && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}
