package review

import (
	"strings"
	"unicode"

	"github.com/hyperifyio/pagegrade/internal/markdown"
)

// Sections holds the raw text accumulated under each marker, one trimmed
// non-blank line per "\n"-terminated line.
type Sections struct {
	Summary      string
	Strengths    string
	Improvements string
	Suggestions  string
	Grade        string
}

func (s *Sections) appendLine(sec Section, line string) {
	var dst *string
	switch sec {
	case SectionSummary:
		dst = &s.Summary
	case SectionStrengths:
		dst = &s.Strengths
	case SectionImprovements:
		dst = &s.Improvements
	case SectionSuggestions:
		dst = &s.Suggestions
	case SectionGrade:
		dst = &s.Grade
	default:
		return
	}
	*dst += line + "\n"
}

// Split scans response line by line. A line containing a marker moves the
// cursor to that section and is dropped; other non-blank lines are appended
// to the current section. Lines before the first marker are discarded. A
// marker that repeats resumes appending to its section rather than resetting
// it.
func Split(response string) Sections {
	var out Sections
	current := SectionNone
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if sec := detect(trimmed); sec != SectionNone {
			current = sec
			continue
		}
		if current != SectionNone && trimmed != "" {
			out.appendLine(current, trimmed)
		}
	}
	return out
}

// Parse converts a model response into a Result. It never fails: a response
// without any markers yields empty fields and the default grade.
func Parse(response string) Result {
	s := Split(response)
	return Result{
		Grade:        ExtractGrade(s.Grade),
		Strengths:    listItems(s.Strengths, SectionStrengths),
		Improvements: listItems(s.Improvements, SectionImprovements),
		Suggestions:  listItems(s.Suggestions, SectionSuggestions),
		Overall:      overall(s.Grade),
	}
}

func listItems(raw string, sec Section) []string {
	items := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" || hasGlyph(line, sec) {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, markdown.Clean(line))
	}
	return items
}

func overall(raw string) string {
	var parts []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" || hasGlyph(line, SectionGrade) {
			continue
		}
		parts = append(parts, line)
	}
	return markdown.Clean(strings.Join(parts, " "))
}

// ExtractGrade finds the first standalone letter grade (A-F with an optional
// "+") in text. Uppercase tokens are preferred; lowercase tokens are only
// considered when no uppercase token exists, and a bare lowercase "a" is
// read as the article. "E" is skipped, and "+" is kept only on A so the
// result is always a valid grade. Without a match DefaultGrade is returned.
func ExtractGrade(text string) string {
	rs := []rune(text)
	if g, ok := scanGrade(rs, true); ok {
		return g
	}
	if g, ok := scanGrade(rs, false); ok {
		return g
	}
	return DefaultGrade
}

func scanGrade(rs []rune, upperOnly bool) (string, bool) {
	for i, r := range rs {
		up := unicode.ToUpper(r)
		if up < 'A' || up > 'F' || up == 'E' {
			continue
		}
		if upperOnly && r != up {
			continue
		}
		if i > 0 && isWordRune(rs[i-1]) || joinedBefore(rs, i) {
			continue
		}
		j := i + 1
		plus := j < len(rs) && rs[j] == '+'
		if plus {
			j++
		}
		if continuesWord(rs, j) {
			continue
		}
		if !upperOnly && r == 'a' && !plus {
			continue
		}
		if plus && up == 'A' {
			return GradeAPlus, true
		}
		return string(up), true
	}
	return "", false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// continuesWord reports whether the rune at j glues the candidate letter to a
// longer token, as in "CTA", "A1", "F-pattern", "A/B" or "A's".
func continuesWord(rs []rune, j int) bool {
	if j >= len(rs) {
		return false
	}
	switch r := rs[j]; {
	case isWordRune(r), r == '+':
		return true
	case r == '-', r == '/', r == '\'', r == '’':
		return j+1 < len(rs) && unicode.IsLetter(rs[j+1])
	}
	return false
}

// joinedBefore reports whether the rune at i is the tail of a pair such as
// "A/B" or "X-C".
func joinedBefore(rs []rune, i int) bool {
	if i < 2 {
		return false
	}
	return (rs[i-1] == '/' || rs[i-1] == '-') && unicode.IsLetter(rs[i-2])
}
