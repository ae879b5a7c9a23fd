// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied field values before they are
// validated or stored. Every store that writes user input runs it through
// these helpers first so that lookups behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone trims a phone number and removes interior spaces, so that
// "06 12 34 56 78" and "0612345678" compare equal.
func Phone(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}
