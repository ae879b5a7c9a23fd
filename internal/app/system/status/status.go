// internal/app/system/status/status.go
package status

import "strings"

// Account statuses. Disabled accounts cannot sign in but keep their data.
const (
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is a recognized status value.
func IsValid(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case Active, Disabled:
		return true
	}
	return false
}
