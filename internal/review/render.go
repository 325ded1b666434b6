package review

import "strings"

// Render writes r back out in the five-section format Parse reads. Parsing
// the output yields r again as long as every item is already clean single-line
// text. When Overall does not name r.Grade, the grade is written on its own
// glyph-prefixed line, which Parse reads for the grade and leaves out of
// Overall.
func Render(r Result) string {
	var sb strings.Builder
	section := func(sec Section, lines ...string) {
		sb.WriteString(MarkerFor(sec).String())
		sb.WriteString("\n")
		for _, l := range lines {
			if strings.TrimSpace(l) == "" {
				continue
			}
			sb.WriteString(l)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	section(SectionSummary)
	section(SectionStrengths, r.Strengths...)
	section(SectionImprovements, r.Improvements...)
	section(SectionSuggestions, r.Suggestions...)
	grade := []string{r.Overall}
	if ValidGrade(r.Grade) && ExtractGrade(r.Overall) != r.Grade {
		grade = []string{MarkerFor(SectionGrade).Glyph + " " + r.Grade, r.Overall}
	}
	section(SectionGrade, grade...)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
