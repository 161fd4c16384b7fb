package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Closed value sets checked by the custom tags. They are kept here as plain
// strings so this package does not depend on the domain layer.
var (
	programmes = map[string]bool{
		"Bachelor of Computing Science":                      true,
		"Bachelor of Arts in Industrial Design":              true,
		"Bachelor of Arts (Hons.) in Creative Digital Media": true,
		"Bachelor of Mobile Game Development":                true,
	}
	applicationStatuses = map[string]bool{
		"Applied":      true,
		"Under Review": true,
		"Interviewing": true,
		"Offered":      true,
		"Rejected":     true,
	}
	companyStatuses = map[string]bool{
		"Pending":  true,
		"Approved": true,
		"Rejected": true,
	}

	websiteRegex = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)
)

// New returns a validator that reports JSON field names and knows the
// custom tags below.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("programme", oneOf(programmes))
	_ = v.RegisterValidation("application_status", oneOf(applicationStatuses))
	_ = v.RegisterValidation("company_status", oneOf(companyStatuses))
	_ = v.RegisterValidation("website", ValidWebsite)
}

func oneOf(set map[string]bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return set[fl.Field().String()]
	}
}

// ValidWebsite accepts bare domains and http(s) URLs.
func ValidWebsite(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return websiteRegex.MatchString(strings.ToLower(val))
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
