package apperror

const (
	// Client errors (4xx)
	CodeMissingFields    = "MISSING_FIELDS"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidDate      = "INVALID_DATE"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// Server errors (5xx)
	CodeServerError = "SERVER_ERROR"
)
