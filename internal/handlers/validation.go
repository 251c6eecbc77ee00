package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
)

// bindingErrorDetails turns a ShouldBindJSON error into per-field messages
func bindingErrorDetails(err error) []apierrors.FieldError {
	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &validationErrs):
		details := make([]apierrors.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, apierrors.FieldError{
				Field:   jsonFieldName(fe.Field()),
				Message: validationMessage(fe),
			})
		}
		return details
	case errors.As(err, &typeErr):
		return []apierrors.FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
		}}
	case errors.As(err, &timeErr):
		return []apierrors.FieldError{{
			Field:   "due_date",
			Message: "must be an RFC 3339 date-time",
		}}
	case errors.As(err, &syntaxErr):
		return []apierrors.FieldError{{
			Field:   "body",
			Message: "malformed JSON",
		}}
	default:
		return []apierrors.FieldError{{
			Field:   "body",
			Message: err.Error(),
		}}
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// jsonFieldName converts a Go field name such as CreatedBy to created_by
func jsonFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
