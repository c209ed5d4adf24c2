// internal/app/system/htmlsanitize/htmlsanitize.go
// Package htmlsanitize strips unsafe HTML from user-generated content.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy  = bluemonday.UGCPolicy()
	textPolicy = bluemonday.StrictPolicy()
)

// Sanitize removes dangerous HTML (scripts, event handlers, javascript:
// URLs) while preserving safe formatting tags and links.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// Text strips all HTML, leaving plain text only. Chat messages are stored
// and relayed through this policy.
func Text(input string) string {
	return strings.TrimSpace(textPolicy.Sanitize(input))
}
