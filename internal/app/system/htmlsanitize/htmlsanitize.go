// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from admin-supplied HTML
// (currently only the settings footer) before it is stored.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

func getPolicy() *bluemonday.Policy {
	once.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

// Sanitize returns the input with scripts, event handlers, and other unsafe
// constructs removed. Safe formatting tags and links survive.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}
