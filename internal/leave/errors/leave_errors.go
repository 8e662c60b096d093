package leaveerrors

import (
	"net/http"

	"ess-api/internal/shared/apperror"
)

var (
	ErrMissingFields = apperror.New(
		apperror.CodeMissingFields,
		"employee_id, leave_type_id, start_date, end_date and reason are required",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidDate,
		"dates must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		"END_DATE_BEFORE_START",
		"end_date must not be earlier than start_date",
		http.StatusBadRequest,
	)
)
