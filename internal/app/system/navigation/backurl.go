// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/volunteers", "/materials").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter to preserve in the fallback URL.
	// For example, "q" would check for a search parameter and append it to the fallback.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
//
// Example usage:
//
//	url := navigation.SafeBackURL(r, navigation.BackURLOptions{
//	    AllowedPrefix:    "/volunteers",
//	    ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
//	    Fallback:         "/volunteers",
//	})
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	// Try query parameter first, then form value
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	// Validate against allowed prefix if specified
	if ret != "" {
		valid := true

		if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
			valid = false
		}

		// Check excluded subpaths
		for _, excluded := range opts.ExcludedSubpaths {
			if strings.Contains(ret, excluded) {
				valid = false
				break
			}
		}

		if valid {
			return ret
		}
	}

	// Build fallback URL, optionally preserving a query parameter
	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param != "" {
			if strings.Contains(fallback, "?") {
				fallback += "&" + opts.PreserveQueryParam + "=" + param
			} else {
				fallback += "?" + opts.PreserveQueryParam + "=" + param
			}
		}
	}

	return fallback
}

// Common back URL configurations for reuse across packages.
var (
	// VolunteersBackURL returns options for volunteer pages. The search
	// query survives the round trip through edit and delete forms.
	VolunteersBackURL = BackURLOptions{
		AllowedPrefix:      "/volunteers",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new"},
		Fallback:           "/volunteers",
		PreserveQueryParam: "q",
	}

	// MaterialsBackURL returns options for the equipment pages.
	MaterialsBackURL = BackURLOptions{
		AllowedPrefix:    "/materials",
		ExcludedSubpaths: []string{"/assign", "/return", "/manage"},
		Fallback:         "/materials",
	}

	// RoomsBackURL returns options for room pages.
	RoomsBackURL = BackURLOptions{
		AllowedPrefix:    "/rooms",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/rooms",
	}

	// PlanningBackURL returns options for planning pages.
	PlanningBackURL = BackURLOptions{
		AllowedPrefix:    "/planning",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/planning",
	}

	// SettingsBackURL returns options for the admin settings pages.
	SettingsBackURL = BackURLOptions{
		AllowedPrefix:    "/settings",
		ExcludedSubpaths: []string{"/edit"},
		Fallback:         "/settings",
	}
)
