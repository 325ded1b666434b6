// Package review turns a model's section-labelled prose into a typed
// landing-page assessment and holds the fixed fallback assessments used when
// the model cannot be consulted.
package review

// Letter grades a Result may carry.
const (
	GradeAPlus = "A+"
	GradeA     = "A"
	GradeB     = "B"
	GradeC     = "C"
	GradeD     = "D"
	GradeF     = "F"

	// DefaultGrade is used when no grade can be determined.
	DefaultGrade = GradeB
)

// Result is the structured assessment returned to callers. The list fields are
// never nil so that they encode as [] rather than null.
type Result struct {
	Grade        string   `json:"grade"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Suggestions  []string `json:"suggestions"`
	Overall      string   `json:"overall"`
}

// ValidGrade reports whether g is one of A+, A, B, C, D or F.
func ValidGrade(g string) bool {
	switch g {
	case GradeAPlus, GradeA, GradeB, GradeC, GradeD, GradeF:
		return true
	}
	return false
}

// Fallback assessments. They are fixed for the life of the process and only
// handed out as copies.
var (
	noCredentialFallback = Result{
		Grade: GradeB,
		Strengths: []string{
			"Clear headline that communicates the main value proposition",
			"Good use of call-to-action buttons",
			"Clean, professional design layout",
		},
		Improvements: []string{
			"Consider adding more social proof elements",
			"The value proposition could be more specific",
			"Add urgency or scarcity elements to increase conversions",
		},
		Suggestions: []string{},
		Overall:     "This is a solid landing page with good fundamentals. The messaging is clear and the design is professional. With some targeted improvements, this page has strong potential for better conversion rates.",
	}

	errorFallback = Result{
		Grade: GradeB,
		Strengths: []string{
			"Clear headline that communicates the main value proposition",
			"Good use of call-to-action buttons",
			"Clean, professional design layout",
		},
		Improvements: []string{
			"Consider adding more social proof elements",
			"The value proposition could be more specific",
			"Add urgency or scarcity elements to increase conversions",
		},
		Suggestions: []string{
			"Add customer testimonials or case studies",
			"Include specific benefits and outcomes",
			"Test different CTA button text variations",
		},
		Overall: "Grade B: This is a solid landing page with good fundamentals. The messaging is clear and the design is professional. With some targeted improvements, this page has strong potential for better conversion rates.",
	}
)

// NoCredentialFallback is returned when no model credential is configured.
func NoCredentialFallback() Result { return noCredentialFallback.clone() }

// ErrorFallback is returned when the model call fails or returns no text.
func ErrorFallback() Result { return errorFallback.clone() }

func (r Result) clone() Result {
	r.Strengths = append([]string{}, r.Strengths...)
	r.Improvements = append([]string{}, r.Improvements...)
	r.Suggestions = append([]string{}, r.Suggestions...)
	return r
}
