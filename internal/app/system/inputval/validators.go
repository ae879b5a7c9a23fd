// internal/app/system/inputval/validators.go
package inputval

import (
	"regexp"
	"strings"
)

// emailPattern is stricter than a bare "has an @" check: no leading,
// trailing, or consecutive dots in either part, no spaces, no display-name
// form. Single-label domains are allowed for dev/test environments.
var emailPattern = regexp.MustCompile(
	`^[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(\.[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*$`)

// IsValidEmail reports whether s looks like a plausible email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return emailPattern.MatchString(s)
}

// phonePattern accepts digits with an optional leading +, 8 to 15 digits
// total. Interior spaces should be stripped by normalize.Phone first.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// IsValidPhone reports whether s looks like a phone number.
func IsValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return phonePattern.MatchString(s)
}

// IsValidObjectID reports whether s is a 24-character hex string, the
// textual form of a Mongo ObjectID.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
