// Package markdown strips the lightweight Markdown a chat model tends to emit
// so that feedback lines can be shown as plain text.
package markdown

import (
	"regexp"
	"strings"
)

var (
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.*?)\*`)
	codeRe    = regexp.MustCompile("`(.*?)`")
	headingRe = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	linkRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// Clean removes bold, italic, inline code, leading heading markers and link
// syntax, in that order, and trims the result. Bold must run before italic so
// a "**" pair is not consumed as two italic markers.
//
// The rules are reapplied until the text no longer changes, which makes Clean
// idempotent: Clean(Clean(x)) == Clean(x). Every rule only removes
// characters, so the loop terminates.
func Clean(text string) string {
	for {
		next := cleanOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanOnce(text string) string {
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
