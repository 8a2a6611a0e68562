package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSubmitContactInput enforces the required-field rules the site
// form hints at but cannot guarantee.
func ValidateSubmitContactInput(input SubmitContactInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}

	if strings.TrimSpace(input.Message) == "" {
		errors = append(errors, ValidationError{"message", "is required"})
	} else if len(input.Message) > 5000 {
		errors = append(errors, ValidationError{"message", "must not exceed 5000 characters"})
	}

	return errors
}
