package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing text for err. Errors outside the
// Exception taxonomy never expose their cause.
func Message(err error) string {
	var appErr *Exception
	if !errors.As(err, &appErr) {
		return ErrInternal.Message
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		return appErr.Message
	}
	return err.Error()
}

func IsInternal(err error) bool {
	return StatusCode(err) >= http.StatusInternalServerError
}
