package review

import "strings"

// Section identifies one labelled region of a model response.
type Section int

const (
	SectionNone Section = iota
	SectionSummary
	SectionStrengths
	SectionImprovements
	SectionSuggestions
	SectionGrade
)

// Marker is the glyph-plus-label line that opens a section.
type Marker struct {
	Section Section
	Glyph   string
	Label   string
}

// String renders the marker the way the prompt asks the model to write it.
func (m Marker) String() string {
	return m.Glyph + " **" + m.Label + "**"
}

// key is the marker with emoji variation selectors removed, so that
// "🛠️" and "🛠" both match.
func (m Marker) key() string {
	return stripVariation(m.String())
}

// Markers lists the five section markers in the order the model is asked to
// produce them. Detection tries them in this order.
var Markers = []Marker{
	{SectionSummary, "🔍", "Quick Summary"},
	{SectionStrengths, "✅", "What's Good"},
	{SectionImprovements, "🛠️", "What Needs Work"},
	{SectionSuggestions, "💡", "Suggestions"},
	{SectionGrade, "🏆", "Final Grade"},
}

// MarkerFor returns the marker of s. The zero Marker is returned for
// SectionNone.
func MarkerFor(s Section) Marker {
	for _, m := range Markers {
		if m.Section == s {
			return m
		}
	}
	return Marker{}
}

// detect returns the section whose marker appears in line, or SectionNone.
func detect(line string) Section {
	line = stripVariation(line)
	for _, m := range Markers {
		if strings.Contains(line, m.key()) {
			return m.Section
		}
	}
	return SectionNone
}

// hasGlyph reports whether line still carries the glyph of s.
func hasGlyph(line string, s Section) bool {
	g := stripVariation(MarkerFor(s).Glyph)
	return g != "" && strings.Contains(stripVariation(line), g)
}

func stripVariation(s string) string {
	return strings.ReplaceAll(s, "\uFE0F", "")
}
