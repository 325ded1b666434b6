package extract

import (
	"regexp"
	"strings"
)

// PageContent is the compact summary of a page that is handed to the model.
// Every field is always populated; a missing element yields "" or an empty
// slice, never nil.
type PageContent struct {
	Title      string   `json:"title"`
	Headlines  []string `json:"headlines"`
	BodyText   string   `json:"bodyText"`
	CTAButtons []string `json:"ctaButtons"`
}

// The patterns below scan raw markup and do not build a tree. Nested or
// malformed markup (a heading inside a heading, an unclosed anchor) yields
// partial or duplicated text.
var (
	titleRe    = regexp.MustCompile(`(?is)<title(?:\s[^>]*)?>(.*?)</title\s*>`)
	headlineRe = regexp.MustCompile(`(?is)<h[1-3](?:\s[^>]*)?>(.*?)</h[1-3]\s*>`)
	bodyRe     = regexp.MustCompile(`(?is)<body(?:\s[^>]*)?>(.*?)</body\s*>`)
	anchorRe   = regexp.MustCompile(`(?is)<a(?:\s[^>]*)?>(.*?)</a\s*>`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// FromHTML extracts the title, level 1-3 headings, body text and anchor texts
// from raw HTML. It never fails; input without a matching element produces
// the zero value for that field.
func FromHTML(input []byte) PageContent {
	s := string(input)
	return PageContent{
		Title:      firstMatch(titleRe, s),
		Headlines:  allMatches(headlineRe, s),
		BodyText:   bodyText(s),
		CTAButtons: allMatches(anchorRe, s),
	}
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(tagRe.ReplaceAllString(m[1], ""))
}

// allMatches returns the tag-stripped inner text of every match in document
// order. Duplicates are kept.
func allMatches(re *regexp.Regexp, s string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		out = append(out, strings.TrimSpace(tagRe.ReplaceAllString(m[1], "")))
	}
	return out
}

func bodyText(s string) string {
	m := bodyRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	text := tagRe.ReplaceAllString(m[1], " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}
