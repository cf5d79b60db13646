package errors

import "net/http"

var ErrTooManyRequests = &Exception{
	Message:    "too many login attempts, try again later",
	StatusCode: http.StatusTooManyRequests,
}
