package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes one fail event: the field, the rule that failed
// and the rendered (or overridden) message.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
	Args    []any
}

// ValidationErrors is the ordered list of fail events from a validation pass.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) hold for any ValidationErrors.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field, in fail order.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields returns the distinct failed fields in first-failure order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
