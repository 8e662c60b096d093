package paysliperrors

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
	ErrInvalidPeriod = apperror.New(
		"INVALID_PERIOD",
		"period must look like YYYY-MM-1 or YYYY-MM-2",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"employee not found",
		http.StatusNotFound,
	)
)
