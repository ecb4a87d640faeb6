// Package strings provides string slice helpers.
package strings

import (
	"strings"
)

// DedupeAndTrimLower trims, lower-cases and removes empty or duplicate
// entries, keeping first-seen order. Used to normalise email domain lists.
//
//	DedupeAndTrimLower([]string{" Gmail.com", "gmail.com", "", "orange.fr"})
//	// []string{"gmail.com", "orange.fr"}
func DedupeAndTrimLower(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Set builds a lookup set from values after DedupeAndTrimLower.
func Set(values []string) map[string]struct{} {
	normalized := DedupeAndTrimLower(values)
	set := make(map[string]struct{}, len(normalized))
	for _, v := range normalized {
		set[v] = struct{}{}
	}
	return set
}

// Contains reports whether value (case-insensitive) is in values.
func Contains(values []string, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, v := range values {
		if strings.ToLower(v) == value {
			return true
		}
	}
	return false
}
