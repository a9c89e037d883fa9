package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tsawler/moodscope"
)

var validate = validator.New()

// AnalyzeEntryRequest is the decoded form of POST /analyze-entry. Text is a
// pointer so a missing field can be told apart from an empty one.
type AnalyzeEntryRequest struct {
	Text      *string `validate:"required"`
	Image     []byte
	ImageName string `validate:"omitempty,max=255"`
}

// ValidateStruct validates a struct based on its validation tags. Failures
// are returned as InvalidInput errors.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return moodscope.InvalidInputf("%s", strings.Join(msgs, "; "))
	}
	return err
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	if field == "imagename" {
		field = "image filename"
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
