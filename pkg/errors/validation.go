package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxKeyLength bounds the byte length of a key.
const MaxKeyLength = 256

// ValidateKey validates a search key.
//
// The validation rules are intentionally conservative:
//   - No blank keys (empty after trimming whitespace)
//   - No control characters
//   - Maximum length of 256 bytes
//
// Keys are not trimmed; "a" and " a" are different keys.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeInvalidKey, "key cannot be blank")
	}

	if len(key) > MaxKeyLength {
		return New(ErrCodeInvalidKey, "key too long (max %d characters)", MaxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key %q contains control characters", key)
		}
	}

	return nil
}

// ValidateFrequency validates an access frequency. Frequencies must be
// positive and finite.
func ValidateFrequency(key string, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return New(ErrCodeInvalidFrequency, "frequency of %q must be a finite number", key)
	}
	if f <= 0 {
		return New(ErrCodeInvalidFrequency, "frequency of %q must be positive, got %v", key, f)
	}
	return nil
}

// ValidatePath validates a dataset or output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURI validates a connection URI against a set of allowed schemes.
func ValidateURI(raw string, schemes ...string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "URI cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(raw, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URI must use one of the schemes %s", strings.Join(schemes, ", "))
}
