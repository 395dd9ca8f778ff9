package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data, err := catalog.SampleResume()
	require.NoError(t, err)

	p.PrintResume(data)
	output := buf.String()

	assert.Contains(t, output, "RESUME DATA")
	assert.Contains(t, output, "Alex Morgan")
	assert.Contains(t, output, "Experience: 2")
	assert.Contains(t, output, "Skills:     7")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume(nil)
	assert.Empty(t, buf.String())
}

func TestPrintDocumentOutline(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data, err := catalog.SampleResume()
	require.NoError(t, err)
	r, err := rendering.New(catalog.Default())
	require.NoError(t, err)
	doc, err := r.Build(rendering.Request{Data: data, TemplateID: "tech"})
	require.NoError(t, err)

	p.PrintDocumentOutline(doc)
	output := buf.String()

	assert.Contains(t, output, "DOCUMENT OUTLINE")
	assert.Contains(t, output, "tech (tech layout)")
	assert.Contains(t, output, "Technical Skills [Programming 3, Tools & Frameworks 2, Other Skills 2]")
	assert.Contains(t, output, "Experience (2 entries)")
	assert.NotContains(t, output, "Sidebar:")
}

func TestPrintOutput(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintOutput("out/alex_morgan_resume.pdf", &rendering.Output{
		ContentType: rendering.ContentTypePDF,
		Body:        []byte("%PDF-1.3"),
		Pages:       2,
		Watermark:   true,
	})
	output := buf.String()

	assert.Contains(t, output, "alex_morgan_resume.pdf")
	assert.Contains(t, output, "Size:      8 bytes")
	assert.Contains(t, output, "Pages:     2")
}

func TestPrintTemplates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTemplates(catalog.Default().List(catalog.Filter{Category: "tech"}))
	output := buf.String()
	assert.Contains(t, output, "TEMPLATES (2)")
	assert.Contains(t, output, "developer-pro")
	assert.Contains(t, output, "premium")

	buf.Reset()
	p.PrintTemplates(nil)
	assert.Contains(t, buf.String(), "No templates match")
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(nil)
	assert.Contains(t, buf.String(), "PREVIEW AND PDF AGREE")

	buf.Reset()
	p.PrintViolations([]validation.Violation{
		{Projection: "pdf", Text: "Kubernetes", Reason: "field missing"},
		{Projection: "html", Reason: "watermark missing"},
	})
	output := buf.String()
	assert.Contains(t, output, "Found 2 violations")
	assert.Contains(t, output, "pdf: field missing")
	assert.Contains(t, output, `"Kubernetes"`)
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("T", strings.Repeat("x", 200))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
