package review

import (
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

type rgb struct{ r, g, b int }

// badge colours follow the web report: green for A grades through red for F.
func gradeColors(grade string) (fill, text rgb) {
	switch strings.ToUpper(grade) {
	case GradeAPlus, GradeA:
		return rgb{220, 252, 231}, rgb{22, 101, 52}
	case GradeB:
		return rgb{219, 234, 254}, rgb{30, 64, 175}
	case GradeC:
		return rgb{254, 249, 195}, rgb{133, 77, 14}
	case GradeD:
		return rgb{255, 237, 213}, rgb{154, 52, 18}
	case GradeF:
		return rgb{254, 226, 226}, rgb{153, 27, 27}
	}
	return rgb{243, 244, 246}, rgb{31, 41, 55}
}

// WritePDF renders r as a one-document report: a coloured grade badge followed
// by the strengths, improvements, suggestions and the grade explanation. The
// page URL, when given, is printed under the heading.
func WritePDF(w io.Writer, pageURL string, r Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Landing page review", "", 1, "L", false, 0, "")
	if pageURL != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(75, 85, 99)
		pdf.CellFormat(0, 6, tr(pageURL), "", 1, "L", false, 0, pageURL)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	fill, text := gradeColors(r.Grade)
	pageW, _ := pdf.GetPageSize()
	cx, cy := pageW/2, pdf.GetY()+14
	pdf.SetFillColor(fill.r, fill.g, fill.b)
	pdf.SetDrawColor(text.r, text.g, text.b)
	pdf.SetLineWidth(1.2)
	pdf.Circle(cx, cy, 12, "FD")
	pdf.SetTextColor(text.r, text.g, text.b)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(cx-12, cy-5)
	pdf.CellFormat(24, 10, r.Grade, "", 0, "C", false, 0, "")
	pdf.SetXY(18, cy+14)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(75, 85, 99)
	pdf.CellFormat(0, 5, "Overall Grade", "", 1, "C", false, 0, "")
	pdf.SetLineWidth(0.2)
	pdf.Ln(4)

	writeList(pdf, tr, "What's Good", rgb{22, 101, 52}, r.Strengths)
	writeList(pdf, tr, "What Needs Work", rgb{154, 52, 18}, r.Improvements)
	writeList(pdf, tr, "Suggestions", rgb{30, 64, 175}, r.Suggestions)

	pdf.SetTextColor(31, 41, 55)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Grade Explanation", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(r.Overall), "", "L", false)

	return pdf.Output(w)
}

// writeList prints a titled bullet list. An item of the form "Label: detail"
// gets a bold label, as the web report does.
func writeList(pdf *gofpdf.Fpdf, tr func(string) string, title string, c rgb, items []string) {
	if len(items) == 0 {
		return
	}
	pdf.SetTextColor(c.r, c.g, c.b)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.Write(5, tr("- "))
		if label, rest, ok := strings.Cut(item, ":"); ok {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Write(5, tr(label+":"))
			pdf.SetFont("Helvetica", "", 10)
			pdf.Write(5, tr(rest))
		} else {
			pdf.Write(5, tr(item))
		}
		pdf.Ln(6)
	}
	pdf.Ln(3)
}
