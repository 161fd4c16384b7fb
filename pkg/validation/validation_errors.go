package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages.
// All missing required fields are folded into a single leading message.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	var missing, messages []string
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			missing = append(missing, fieldPath(e))
			continue
		}
		messages = append(messages, formatSingleError(e))
	}

	if len(missing) > 0 {
		messages = append([]string{
			"Please provide all required fields: " + strings.Join(missing, ", "),
		}, messages...)
	}
	return messages
}

// Message joins FormatValidationErrors into one line.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	field := fieldPath(e)
	switch e.Tag() {
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, e.Param())
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters long", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s cannot exceed %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "programme":
		return fmt.Sprintf("%s must be one of the offered programmes", field)
	case "application_status":
		return fmt.Sprintf("%s must be one of: Applied, Under Review, Interviewing, Offered, Rejected", field)
	case "company_status":
		return fmt.Sprintf("%s must be one of: Pending, Approved, Rejected", field)
	case "website":
		return fmt.Sprintf("%s must be a valid website URL", field)
	}
	return fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
}

// fieldPath drops the top-level struct name: "RegisterStudentInput.email" -> "email".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}
