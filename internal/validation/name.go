package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const maxProductNameLength = 250

// ValidateProductName validates the inline product name of a one-time order
func ValidateProductName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("name is required")
	}

	if utf8.RuneCountInString(trimmed) > maxProductNameLength {
		return errors.New("name is too long (max 250 characters)")
	}

	return nil
}
