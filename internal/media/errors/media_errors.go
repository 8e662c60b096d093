package mediaerrors

import (
	"net/http"

	"ess-api/internal/shared/apperror"
)

var (
	ErrNoFile = apperror.New(
		apperror.CodeMissingFields,
		"no file uploaded",
		http.StatusBadRequest,
	)
	ErrMissingBioID = apperror.New(
		"MISSING_BIO_ID",
		"bio_id is required",
		http.StatusBadRequest,
	)
	ErrInvalidFileType = apperror.New(
		"INVALID_FILE_TYPE",
		"invalid file type, only JPEG and PNG allowed",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		"FILE_TOO_LARGE",
		"file too large, maximum 5MB allowed",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"employee not found",
		http.StatusNotFound,
	)
	ErrStorageFailed = apperror.New(
		apperror.CodeServerError,
		"failed to save file",
		http.StatusInternalServerError,
	)
)
