package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const previewTemplate = "preview.html.tmpl"

var (
	previewOnce sync.Once
	preview     *template.Template
	previewErr  error
)

func loadPreview() (*template.Template, error) {
	previewOnce.Do(func() {
		preview, previewErr = template.ParseFS(templateFS, "templates/"+previewTemplate)
		if previewErr != nil {
			previewErr = &TemplateError{Message: "failed to parse preview template", Cause: previewErr}
		}
	})
	return preview, previewErr
}

type previewData struct {
	*Document
	CSS template.CSS
}

// ToHTML projects the document to a self-contained HTML page. The page is
// reflowable on screen and prints on A4 with the same margins as the PDF.
func ToHTML(doc *Document) (string, error) {
	tmpl, err := loadPreview()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, previewTemplate, previewData{
		Document: doc,
		CSS:      template.CSS(stylesheet(doc.Style)),
	}); err != nil {
		return "", &TemplateError{Message: "failed to execute preview template", Cause: err}
	}
	return buf.String(), nil
}

// stylesheet derives the preview CSS from a variant style. Values come from
// the layout registry and catalog accents, never from resume data.
func stylesheet(s Style) string {
	var b strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	w(`@page { size: A4; margin: %gmm; }`, pageMargin)
	w(`* { box-sizing: border-box; }`)
	w(`body { margin: 0; background: #e5e7eb; color: %s; font-family: %s; font-size: %gpt; line-height: 1.35; }`,
		s.Text.Hex(), s.CSSBody, s.BodySize)
	w(`.page { position: relative; overflow: hidden; width: 210mm; min-height: 297mm; margin: 0 auto; padding: %gmm; background: #fff; }`, pageMargin)
	w(`h1, h2, h3 { font-family: %s; margin: 0; }`, s.CSSHeading)

	align := "left"
	if s.CenterHeader {
		align = "center"
	}
	w(`.identity { text-align: %s; margin-bottom: 6mm; }`, align)
	w(`.name { font-size: %gpt; color: %s; }`, s.NameSize, s.Accent.Hex())
	w(`.contact { margin: 1mm 0 0; color: %s; }`, s.Muted.Hex())
	if s.HeaderBand {
		w(`.identity { margin: -%[1]gmm -%[1]gmm 6mm; padding: 8mm %[1]gmm; background: %[2]s; }`, pageMargin, s.Accent.Hex())
		w(`.identity .name, .identity .contact { color: #fff; }`)
	}

	transform := "none"
	if s.UpperHeading {
		transform = "uppercase"
	}
	w(`.section { margin-bottom: 5mm; }`)
	w(`.section-title { font-size: %gpt; color: %s; text-transform: %s; letter-spacing: 0.03em; margin-bottom: 2mm; }`,
		s.HeadingSize, s.Accent.Hex(), transform)
	if s.HeadingRule {
		w(`.section-title { border-bottom: 0.3mm solid %s; padding-bottom: 1mm; }`, s.Accent.Hex())
	}

	w(`.entry { margin-bottom: 3mm; }`)
	w(`.entry-head { display: flex; justify-content: space-between; gap: 4mm; font-weight: bold; }`)
	w(`.entry-dates { white-space: nowrap; font-weight: normal; color: %s; }`, s.Muted.Hex())
	w(`.entry-org { font-style: italic; }`)
	w(`.entry-location::before { content: " \00b7  "; }`)
	w(`.entry-detail { color: %s; }`, s.Muted.Hex())
	w(`.entry-description { margin: 1mm 0 0; white-space: pre-line; }`)
	w(`.skill-label { font-size: %gpt; margin: 1mm 0; }`, s.BodySize)

	if s.BulletSkills {
		w(`.skills { margin: 0; padding-left: 5mm; }`)
	} else {
		w(`.skills { list-style: none; margin: 0; padding: 0; }`)
		w(`.skill { display: inline; }`)
		w(`.skill + .skill::before { content: ", "; }`)
	}

	if s.HasSidebar() {
		w(`.columns { display: flex; gap: %gmm; }`, columnGap)
		w(`.main { flex: 1; min-width: 0; }`)
		w(`.sidebar { flex: 0 0 %gmm; padding: 3mm; background: %s; color: %s; }`,
			s.SidebarWidth, s.SidebarFill.Hex(), s.SidebarText.Hex())
		w(`.sidebar .section-title, .sidebar .entry-dates, .sidebar .entry-detail { color: %s; }`, s.SidebarText.Hex())
		if s.SidebarLeft {
			w(`.sidebar { order: -1; }`)
		}
	}

	w(`.watermark { position: absolute; top: 50%%; left: 50%%; transform: translate(-50%%, -50%%) rotate(-45deg); font: bold 96pt Helvetica, Arial, sans-serif; color: rgba(150, 150, 150, %g); pointer-events: none; z-index: 10; }`,
		watermarkAlpha)
	w(`@media print { body { background: none; } .page { margin: 0; padding: 0; width: auto; min-height: 0; } }`)
	return b.String()
}
