package errors

import "net/http"

var ErrValidation = &Exception{
	Message:    "validation error",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrInvalidPagination = &Exception{
	Message:    "invalid pagination",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrInvalidTaskID = &Exception{
	Message:    "task id must be a positive integer",
	StatusCode: http.StatusUnprocessableEntity,
}
