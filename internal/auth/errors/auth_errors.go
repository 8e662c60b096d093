package autherrors

import (
	"net/http"

	"ess-api/internal/shared/apperror"
)

var (
	ErrMissingFields = apperror.New(
		apperror.CodeMissingFields,
		"username and password are required",
		http.StatusBadRequest,
	)
	ErrInvalidCredentials = apperror.New(
		"INVALID_CREDENTIALS",
		"invalid username or password",
		http.StatusUnauthorized,
	)
	ErrAccountDisabled = apperror.New(
		"ACCOUNT_DISABLED",
		"this account is disabled",
		http.StatusForbidden,
	)
)
