package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a gin binding failure into the envelope error the
// API answers with: absent required fields are MISSING_FIELDS, anything else
// is INVALID_INPUT with the offending field named.
func MapValidationError(err error) *AppError {
	if errs, ok := err.(validator.ValidationErrors); ok {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return New(
				CodeMissingFields,
				field+" is required",
				http.StatusBadRequest,
			)
		default:
			return New(
				CodeInvalidInput,
				field+" is invalid",
				http.StatusBadRequest,
			)
		}
	}

	return New(
		CodeMissingFields,
		"Invalid request body",
		http.StatusBadRequest,
	)
}
