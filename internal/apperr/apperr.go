// Package apperr defines the error classes every store-touching
// operation translates into before returning to a handler. Raw gorm
// errors never cross the handler boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation covers missing/invalid request fields. No partial
	// write may have occurred when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized means no session identity could be resolved.
	ErrUnauthorized = errors.New("login required")

	// ErrForbidden means the resolved user is not the resource owner.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced question/user/feedback row does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint fired, e.g. a second
	// vote row for the same (question, user) under a race. Callers
	// treat it as a benign "already voted/liked".
	ErrConflict = errors.New("already exists")

	// ErrStoreUnavailable wraps any other store failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Wrap attaches context to a taxonomy error.
func Wrap(class error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), class)
}

// Status maps a taxonomy error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for an error. Internal
// detail is kept out of 5xx responses.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	}
	return err.Error()
}
