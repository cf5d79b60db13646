package errors

import "net/http"

var ErrInvalidCredentials = &Exception{
	Message:    "incorrect email or password",
	StatusCode: http.StatusUnauthorized,
}
