package markdown

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "  just text  ", "just text"},
		{"bold", "**Strong** headline", "Strong headline"},
		{"italic", "an *emphasised* word", "an emphasised word"},
		{"bold before italic", "***both***", "both"},
		{"code", "use `npm install` first", "use npm install first"},
		{"heading", "### Section title", "Section title"},
		{"heading keeps inline hash", "C# is # not a heading", "C# is # not a heading"},
		{"hash without space", "#hashtag", "#hashtag"},
		{"link", "see [the docs](https://example.com/docs) now", "see the docs now"},
		{"combined", "- **Clear CTA**: the [Sign Up](/signup) button uses `primary` colour", "- Clear CTA: the Sign Up button uses primary colour"},
		{"stacked headings", "# # nested", "nested"},
		{"unpaired marker", "5 * 3", "5 * 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"**a** *b* `c`",
		"***a***",
		"****a****",
		" # heading with leading space",
		"# # double heading",
		"`*a*`",
		"*`a`*",
		"[**x**](y)",
		"**[a](b)**",
		"[a](b)(c)",
		"#### **Bold heading** with [link](http://x)",
		"* * *",
		"🏆 **Final Grade** – B+",
		"line one\n## line two\n`line three`",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
