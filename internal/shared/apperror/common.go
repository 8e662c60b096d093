package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrMethodNotAllowed = New(
		CodeMethodNotAllowed,
		"Method not allowed",
		http.StatusMethodNotAllowed,
	)
)
