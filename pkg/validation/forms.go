package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Required field sets per form kind, by JSON name. The pre-check collects
// every missing field, not just the first, so clients can fix a form in one
// round trip.
var (
	contactRequiredFields  = []string{"name", "phone", "subject", "message", "contactMethod"}
	estimateRequiredFields = []string{"name", "phone", "ringType", "ringSize", "budget", "usage"}
	subsidyRequiredFields  = []string{
		"name", "email", "phone", "company", "companyType", "businessType",
		"interestedProduct", "expectedInstallation", "preferredContact",
	}
)

// NewValidator builds the validator instance used for the field-level check.
// Struct fields are reported by their JSON names so error details line up
// with the wire format.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MissingContactFields returns the names of required contact-form fields
// that are absent or empty after sanitization.
func MissingContactFields(data map[string]interface{}) []string {
	return missingNonEmpty(data, contactRequiredFields)
}

// MissingEstimateFields returns the names of required estimate-form fields
// that are absent or empty after sanitization.
func MissingEstimateFields(data map[string]interface{}) []string {
	return missingNonEmpty(data, estimateRequiredFields)
}

// MissingSubsidyFields returns the names of required subsidy-support fields
// that are absent. This form's pre-check tests key presence only; emptiness
// is left to the field-level check.
func MissingSubsidyFields(data map[string]interface{}) []string {
	missing := []string{}
	for _, field := range subsidyRequiredFields {
		if _, ok := data[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

func missingNonEmpty(data map[string]interface{}, required []string) []string {
	missing := []string{}
	for _, field := range required {
		if !isNonEmptyString(data[field]) {
			missing = append(missing, field)
		}
	}
	return missing
}

func isNonEmptyString(v interface{}) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}
