package employeeerrors

import (
	"net/http"

	"ess-api/internal/shared/apperror"
)

var (
	ErrMissingBioID = apperror.New(
		"MISSING_BIO_ID",
		"bio_id is required",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"employee not found",
		http.StatusNotFound,
	)
)
