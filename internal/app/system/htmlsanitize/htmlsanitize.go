// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips dangerous markup from user-supplied rich text
// before it is stored. Project descriptions may contain formatting produced by
// a rich text editor; everything else (scripts, event handlers, iframes) is
// removed.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("mark", "u", "s", "sub", "sup")
	return p
}

// Sanitize returns s with unsafe HTML removed. Safe formatting tags
// (paragraphs, emphasis, lists, tables, code blocks, links, images) are
// preserved.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(policy.Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}
