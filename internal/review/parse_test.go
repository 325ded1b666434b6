package review

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

const sampleResponse = `Here is my take on your page.

1. 🔍 **Quick Summary** – What is this page trying to do?
It sells a budgeting app to freelancers.

2. ✅ **What's Good**
- **Headline**: "Best Deal" is short and punchy.
- The *Sign Up* link is easy to find.

3. 🛠️ **What Needs Work**
- No social proof anywhere.

4. 💡 **Suggestions**
- Add a testimonial strip under the hero.
- Swap "Sign Up" for ` + "`Start saving`" + `.
- Link the [pricing page](https://example.com/pricing) above the fold.

5. 🏆 **Final Grade**
This page gets an A+ because the offer is clear.
Still, **tighten** the copy.
`

func TestParse_FullResponse(t *testing.T) {
	got := Parse(sampleResponse)
	want := Result{
		Grade: "A+",
		Strengths: []string{
			`- Headline: "Best Deal" is short and punchy.`,
			"- The Sign Up link is easy to find.",
		},
		Improvements: []string{"- No social proof anywhere."},
		Suggestions: []string{
			"- Add a testimonial strip under the hero.",
			`- Swap "Sign Up" for Start saving.`,
			"- Link the pricing page above the fold.",
		},
		Overall: "This page gets an A+ because the offer is clear. Still, tighten the copy.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected result:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestParse_TotalOnArbitraryInput(t *testing.T) {
	inputs := []string{"", "\n\n\n", "no markers at all", "**What's Good** without a glyph", "✅ glyph without label"}
	for _, in := range inputs {
		got := Parse(in)
		if got.Grade != DefaultGrade {
			t.Fatalf("input %q: expected default grade, got %q", in, got.Grade)
		}
		if got.Strengths == nil || got.Improvements == nil || got.Suggestions == nil {
			t.Fatalf("input %q: list fields must be non-nil: %#v", in, got)
		}
		if len(got.Strengths)+len(got.Improvements)+len(got.Suggestions) != 0 || got.Overall != "" {
			t.Fatalf("input %q: expected empty result, got %#v", in, got)
		}
	}
}

func TestParse_RepeatedMarkerAccumulates(t *testing.T) {
	in := strings.Join([]string{
		"✅ **What's Good**",
		"first",
		"💡 **Suggestions**",
		"idea",
		"✅ **What's Good**",
		"second",
	}, "\n")
	got := Parse(in)
	if !reflect.DeepEqual(got.Strengths, []string{"first", "second"}) {
		t.Fatalf("expected accumulated strengths, got %#v", got.Strengths)
	}
	if !reflect.DeepEqual(got.Suggestions, []string{"idea"}) {
		t.Fatalf("unexpected suggestions: %#v", got.Suggestions)
	}
}

func TestParse_EmptySectionAndOrder(t *testing.T) {
	in := "🏆 **Final Grade**\nC overall.\n🛠️ **What Needs Work**\n✅ **What's Good**\nnice\n"
	got := Parse(in)
	if got.Grade != "C" || got.Overall != "C overall." {
		t.Fatalf("unexpected grade section: %#v", got)
	}
	if len(got.Improvements) != 0 {
		t.Fatalf("expected empty improvements, got %#v", got.Improvements)
	}
	if !reflect.DeepEqual(got.Strengths, []string{"nice"}) {
		t.Fatalf("unexpected strengths: %#v", got.Strengths)
	}
}

func TestParse_MarkerWithoutVariationSelector(t *testing.T) {
	got := Parse("🛠 **What Needs Work**\nfix the footer")
	if !reflect.DeepEqual(got.Improvements, []string{"fix the footer"}) {
		t.Fatalf("expected marker without U+FE0F to match, got %#v", got)
	}
}

func TestParse_DropsLinesCarryingSectionGlyph(t *testing.T) {
	got := Parse("💡 **Suggestions**\n💡 (continued)\nreal idea")
	if !reflect.DeepEqual(got.Suggestions, []string{"real idea"}) {
		t.Fatalf("unexpected suggestions: %#v", got.Suggestions)
	}
}

func TestExtractGrade(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"This page gets an A+ because...", "A+"},
		{"Grade: **B**", "B"},
		{"C – average effort", "C"},
		{"I'd give it a D.", "D"},
		{"F", "F"},
		{"grade: b+ overall", "B"},
		{"Honestly a c", "C"},
		{"a+ work", "A+"},
		{"The CTA and the FAQ need work", DefaultGrade},
		{"Uses the F-pattern well, B overall", "B"},
		{"E for effort, otherwise C", "C"},
		{"It's a decent page", DefaultGrade},
		{"B- at best", "B"},
		{"Needs A/B testing. Grade: C", "C"},
		{"Run an A/B test on the hero", DefaultGrade},
		{"", DefaultGrade},
		{"nothing to see here", DefaultGrade},
	}
	for _, tc := range cases {
		got := ExtractGrade(tc.in)
		if got != tc.want {
			t.Fatalf("ExtractGrade(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if !ValidGrade(got) {
			t.Fatalf("ExtractGrade(%q) returned invalid grade %q", tc.in, got)
		}
	}
}

func TestParse_RoundTripSyntheticResponse(t *testing.T) {
	for n := 0; n <= 3; n++ {
		var sb strings.Builder
		lines := func(prefix string) []string {
			out := make([]string, n)
			for i := range out {
				out[i] = fmt.Sprintf("%s item %d", prefix, i+1)
			}
			return out
		}
		sections := map[Section][]string{
			SectionSummary:      lines("summary"),
			SectionStrengths:    lines("**strength**"),
			SectionImprovements: lines("  improvement"),
			SectionSuggestions:  lines("`suggestion`"),
			SectionGrade:        {"Final verdict: D"},
		}
		for _, m := range Markers {
			sb.WriteString(m.String() + "\n")
			for _, l := range sections[m.Section] {
				sb.WriteString(l + "\n")
			}
		}
		got := Parse(sb.String())
		if len(got.Strengths) != n || len(got.Improvements) != n || len(got.Suggestions) != n {
			t.Fatalf("n=%d: unexpected lengths %#v", n, got)
		}
		for i := 0; i < n; i++ {
			if got.Strengths[i] != fmt.Sprintf("strength item %d", i+1) {
				t.Fatalf("n=%d: strength %d = %q", n, i, got.Strengths[i])
			}
			if got.Improvements[i] != fmt.Sprintf("improvement item %d", i+1) {
				t.Fatalf("n=%d: improvement %d = %q", n, i, got.Improvements[i])
			}
			if got.Suggestions[i] != fmt.Sprintf("suggestion item %d", i+1) {
				t.Fatalf("n=%d: suggestion %d = %q", n, i, got.Suggestions[i])
			}
		}
		if got.Grade != "D" || got.Overall != "Final verdict: D" {
			t.Fatalf("n=%d: unexpected grade section %#v", n, got)
		}
	}
}

func TestSplit_KeepsSummary(t *testing.T) {
	s := Split("preamble\n🔍 **Quick Summary**\n  A SaaS landing page.  \n\n")
	if s.Summary != "A SaaS landing page.\n" {
		t.Fatalf("unexpected summary accumulator: %q", s.Summary)
	}
}
