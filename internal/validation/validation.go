// Package validation provides input trimming and cleaning helpers shared by
// the services.
package validation

import "strings"

// IsBlank reports whether the string is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CleanList trims every element and drops the ones that end up empty. The
// input slice is not modified; the result is never nil so cleaned lists
// always marshal as JSON arrays.
func CleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

// CleanText trims surrounding whitespace from free-text fields.
func CleanText(s string) string {
	return strings.TrimSpace(s)
}
