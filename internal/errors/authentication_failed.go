package errors

import "net/http"

var ErrAuthenticationFailed = &Exception{
	Message:    "could not validate credentials",
	StatusCode: http.StatusUnauthorized,
}
