// Package email holds helpers shared by every component that reads user or
// contact email addresses.
package email

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Domain returns the lower-cased part after the last '@'. Callers validate
// syntax beforehand; an address without '@' yields "".
func Domain(address string) string {
	at := strings.LastIndexByte(address, '@')
	if at < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(address[at+1:]))
}

// IsValid reports whether address is a syntactically valid email address.
// Empty strings are invalid.
func IsValid(address string) bool {
	if strings.TrimSpace(address) == "" {
		return false
	}
	return validation.Validate(address, validation.Required, is.Email) == nil
}

// Normalize trims and lower-cases address. Stored and looked up addresses
// go through it so later comparisons can be exact.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Equal compares two addresses ignoring case and surrounding whitespace.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
