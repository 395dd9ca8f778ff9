package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// Projection names used in violations.
const (
	ProjectionHTML = "html"
	ProjectionPDF  = "pdf"
)

const watermarkLabel = "PREMIUM"

// Violation is one disagreement between the document tree and a projection.
type Violation struct {
	Projection string
	Text       string
	Reason     string
}

func (v Violation) String() string {
	if v.Text == "" {
		return fmt.Sprintf("%s: %s", v.Projection, v.Reason)
	}
	return fmt.Sprintf("%s: %s: %q", v.Projection, v.Reason, v.Text)
}

// normalize drops whitespace and case so wrapped or uppercased text still
// matches its source field.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// containsInOrder reports whether every word of field occurs in text, in
// order. It accepts fields split by a page break or a column.
func containsInOrder(text, field string) bool {
	if strings.Contains(text, normalize(field)) {
		return true
	}
	pos := 0
	for _, w := range strings.Fields(field) {
		i := strings.Index(text[pos:], normalize(w))
		if i < 0 {
			return false
		}
		pos += i + len(normalize(w))
	}
	return true
}

// CheckAgreement verifies that both projections show every field of the
// document and carry the watermark exactly when the document does. It
// returns an error only when a projection cannot be parsed.
func CheckAgreement(doc *rendering.Document, html string, pdfBody []byte) ([]Violation, error) {
	preview, err := ParsePreview(html)
	if err != nil {
		return nil, err
	}
	pages, err := ExtractPages(pdfBody)
	if err != nil {
		return nil, err
	}

	var out []Violation
	htmlText := normalize(preview.Text)
	pdfText := normalize(strings.Join(pages, "\n"))

	for _, field := range doc.Texts() {
		if strings.TrimSpace(field) == "" {
			continue
		}
		if !containsInOrder(htmlText, field) {
			out = append(out, Violation{Projection: ProjectionHTML, Text: field, Reason: "field missing"})
		}
		if !containsInOrder(pdfText, field) {
			out = append(out, Violation{Projection: ProjectionPDF, Text: field, Reason: "field missing"})
		}
	}

	want := make([]string, 0, len(doc.Main)+len(doc.Sidebar))
	for _, s := range doc.Sections() {
		want = append(want, string(s.Kind))
	}
	got := append([]string(nil), preview.Sections...)
	sort.Strings(want)
	sort.Strings(got)
	if strings.Join(want, ",") != strings.Join(got, ",") {
		out = append(out, Violation{
			Projection: ProjectionHTML,
			Reason:     fmt.Sprintf("sections %v, want %v", got, want),
		})
	}

	if doc.Watermark != (preview.Watermarks > 0) {
		out = append(out, Violation{Projection: ProjectionHTML, Reason: watermarkReason(doc.Watermark)})
	}
	out = append(out, checkPDFWatermark(doc, pages)...)
	return out, nil
}

func watermarkReason(want bool) string {
	if want {
		return "watermark missing"
	}
	return "unexpected watermark"
}

// checkPDFWatermark requires the label on every page of a watermarked
// document and nowhere beyond the document's own text otherwise.
func checkPDFWatermark(doc *rendering.Document, pages []string) []Violation {
	label := normalize(watermarkLabel)
	if doc.Watermark {
		var out []Violation
		for i, p := range pages {
			if !strings.Contains(normalize(p), label) {
				out = append(out, Violation{
					Projection: ProjectionPDF,
					Reason:     fmt.Sprintf("watermark missing on page %d", i+1),
				})
			}
		}
		return out
	}

	own := strings.Count(normalize(strings.Join(doc.Texts(), " ")), label)
	seen := strings.Count(normalize(strings.Join(pages, " ")), label)
	if seen > own {
		return []Violation{{Projection: ProjectionPDF, Reason: watermarkReason(false)}}
	}
	return nil
}
