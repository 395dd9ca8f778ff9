package validation

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Preview is the content extracted from a rendered HTML preview.
type Preview struct {
	Text       string
	Sections   []string // data-kind of each section, in document order
	Watermarks int
}

// ParsePreview extracts the visible text, section kinds and watermark count.
func ParsePreview(html string) (*Preview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Projection: ProjectionHTML, Message: "failed to parse preview html", Cause: err}
	}

	p := &Preview{
		Text:       doc.Find("body").Text(),
		Watermarks: doc.Find(".watermark").Length(),
	}
	doc.Find("section[data-kind]").Each(func(_ int, s *goquery.Selection) {
		p.Sections = append(p.Sections, s.AttrOr("data-kind", ""))
	})
	return p, nil
}

// PreviewText returns the visible text of a rendered preview.
func PreviewText(html string) (string, error) {
	p, err := ParsePreview(html)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}
