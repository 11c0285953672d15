package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns a json field name into a label:
// no_of_installments -> No Of Installments.
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError reports the first failed binding rule as an AppError.
// Field names are the json names registered by Init.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		case "oneof":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be one of [%s]", field, e.Param()), http.StatusBadRequest)
		case "ymd":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field), http.StatusBadRequest)
		case "ym":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be a month (YYYY-MM)", field), http.StatusBadRequest)
		case "amount":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be a positive amount", field), http.StatusBadRequest)
		case "gt", "gte", "lt", "lte":
			return New(CodeInvalidInput, fmt.Sprintf("%s is out of range", field), http.StatusBadRequest)
		default:
			return InvalidField(field)
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
