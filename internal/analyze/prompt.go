package analyze

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/pagegrade/internal/extract"
	"github.com/hyperifyio/pagegrade/internal/review"
)

// DefaultSystemPrompt fixes the reviewer persona and tone.
const DefaultSystemPrompt = "You are an expert in conversion rate optimization and UX writing. Your job is to analyze landing pages and provide clear, honest, and helpful feedback. You should act like a smart but friendly landing page copy editor and UX reviewer. Use clear, casual language. Be blunt like a startup mentor. No vague praise — be honest."

// bodyTextLimit is how many characters of body text go into the prompt.
const bodyTextLimit = 2000

// instructions asks for the five sections Parse understands. Each line names
// the marker the model must reproduce verbatim.
var instructions = []string{
	review.MarkerFor(review.SectionSummary).String() + " – What is this page trying to do?",
	review.MarkerFor(review.SectionStrengths).String() + " – What works well about the headline, CTA, structure, or messaging?",
	review.MarkerFor(review.SectionImprovements).String() + " – Be specific about things that are confusing, generic, or weak.",
	review.MarkerFor(review.SectionSuggestions).String() + " – Give actionable ideas to improve the page's clarity or conversion.",
	review.MarkerFor(review.SectionGrade).String() + " – Rate this landing page from A+ to F and explain why.",
}

// BuildUserMessage embeds the extracted page summary followed by the fixed
// five-part instruction template.
func BuildUserMessage(pc extract.PageContent) string {
	var sb strings.Builder
	sb.WriteString("Here is the text extracted from the landing page:\n\n")
	sb.WriteString("Title: ")
	sb.WriteString(pc.Title)
	sb.WriteString("\nHeadlines: ")
	sb.WriteString(strings.Join(pc.Headlines, "\n"))
	sb.WriteString("\nBody Text: ")
	sb.WriteString(truncateRunes(pc.BodyText, bodyTextLimit))
	sb.WriteString("\nCTA Buttons: ")
	sb.WriteString(strings.Join(pc.CTAButtons, ", "))
	sb.WriteString("\n\n---\n\nPlease analyze this page and respond with:\n")
	for i, line := range instructions {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, line))
	}
	return sb.String()
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
