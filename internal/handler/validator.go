package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validation for date keys
	_ = v.RegisterValidation("datekey", validateDateKey)
	_ = v.RegisterValidation("attemptindex", validateAttemptIndex)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// validateDateKey accepts UTC calendar dates in YYYY-MM-DD form
func validateDateKey(fl validator.FieldLevel) bool {
	return datekey.Valid(fl.Field().String())
}

// validateAttemptIndex accepts real attempt indices plus the hint and
// summary marker values
func validateAttemptIndex(fl validator.FieldLevel) bool {
	idx := int(fl.Field().Int())
	if idx >= domain.MinAttemptIndex && idx <= domain.MaxAttemptIndex {
		return true
	}
	return idx == domain.HintMarkerIndex || idx == domain.SummaryMarkerIndex
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "datekey":
			errs[field] = "Expected a YYYY-MM-DD date"
		case "attemptindex":
			errs[field] = "Invalid attempt index"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
