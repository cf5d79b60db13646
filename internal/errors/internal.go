package errors

import "net/http"

var ErrInternal = &Exception{
	Message:    "internal server error",
	StatusCode: http.StatusInternalServerError,
}

var ErrDatabaseUnreachable = &Exception{
	Message:    "database unreachable",
	StatusCode: http.StatusServiceUnavailable,
}
