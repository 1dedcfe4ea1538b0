package model

import (
	"errors"
	"fmt"
	"unicode"
)

const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 13
)

// ValidationError is raised before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateTelephone accepts an empty value. Otherwise only digits are counted, so
// "11 1234-5678" has ten.
func ValidateTelephone(phone string) error {
	if phone == "" {
		return nil
	}
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < MinPhoneDigits || digits > MaxPhoneDigits {
		return NewValidationError("telephone", "must contain between %d and %d digits", MinPhoneDigits, MaxPhoneDigits)
	}
	return nil
}
