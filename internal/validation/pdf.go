// Package validation inspects rendered output and checks that the HTML
// preview and the PDF download agree on content.
package validation

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

func openPDF(body []byte) (*pdf.Reader, error) {
	r, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, &ParseError{Projection: ProjectionPDF, Message: "failed to read pdf", Cause: err}
	}
	return r, nil
}

// CountPages returns the number of pages in a PDF document.
func CountPages(body []byte) (int, error) {
	r, err := openPDF(body)
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}

// ExtractPages returns the plain text of every page, in page order.
func ExtractPages(body []byte) ([]string, error) {
	r, err := openPDF(body)
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &ParseError{
				Projection: ProjectionPDF,
				Message:    fmt.Sprintf("failed to extract text from page %d", i),
				Cause:      err,
			}
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// ExtractText returns the plain text of the whole document.
func ExtractText(body []byte) (string, error) {
	pages, err := ExtractPages(body)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	for i, p := range pages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p)
	}
	return b.String(), nil
}
