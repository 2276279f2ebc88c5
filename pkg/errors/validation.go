package errors

import (
	"strings"
	"unicode"
)

// maxLookupLength bounds a single lookup value.
const maxLookupLength = 2048

// ValidateLookup validates a required lookup argument (a domain, URL,
// technology or company name) before it is placed in a request URL.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only values
//   - No control characters (newlines, null bytes, ...)
//   - Maximum length of 2048 characters
//
// The length limit is stricter than the service itself, which accepts any
// length.
//
// field names the argument in the returned error (e.g. "url").
func ValidateLookup(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}

	if len(value) > maxLookupLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, maxLookupLength)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}

	return nil
}

// ValidateLookups validates a list of lookup values. The list itself must be
// non-empty and every element must pass [ValidateLookup].
func ValidateLookups(field string, values []string) error {
	if len(values) == 0 {
		return New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}
	for _, v := range values {
		if err := ValidateLookup(field, v); err != nil {
			return err
		}
	}
	return nil
}
