package errors

import "net/http"

var ErrInactiveAccount = &Exception{
	Message:    "inactive user",
	StatusCode: http.StatusBadRequest,
}
