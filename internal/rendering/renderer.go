package rendering

import (
	"errors"
	"time"

	"github.com/jonathan/resume-builder/internal/access"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/types"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Content types of the projections.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

// Recorder observes render outcomes. It is satisfied by the metrics
// collector in the observability package.
type Recorder interface {
	ObserveRender(templateID, format, outcome string, elapsed time.Duration)
}

// Request is one render call. An empty TemplateID falls back to the
// template stored on the resume data.
type Request struct {
	Data       *types.ResumeData
	TemplateID string
	Subscribed bool
}

// Output is a downloadable document.
type Output struct {
	Filename    string
	ContentType string
	Body        []byte
	Pages       int
	Watermark   bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRecorder reports every render to rec.
func WithRecorder(rec Recorder) Option {
	return func(r *Renderer) { r.recorder = rec }
}

// WithPDFOptions overrides the PDF projection settings.
func WithPDFOptions(opts PDFOptions) Option {
	return func(r *Renderer) { r.pdf = opts }
}

// Renderer resolves templates, applies the access gate and runs both
// projections. It holds no per-call state and is safe for concurrent use.
type Renderer struct {
	catalog  *catalog.Catalog
	recorder Recorder
	pdf      PDFOptions
}

// New creates a renderer over the catalog. Every catalog entry must name a
// registered layout.
func New(c *catalog.Catalog, opts ...Option) (*Renderer, error) {
	if c == nil {
		return nil, errors.New("renderer requires a template catalog")
	}
	for _, t := range c.List(catalog.Filter{}) {
		if _, ok := LookupLayout(t.Layout); !ok {
			return nil, &UnknownLayoutError{TemplateID: t.ID, Layout: t.Layout}
		}
	}

	r := &Renderer{catalog: c, pdf: DefaultPDFOptions}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Catalog returns the catalog the renderer resolves templates against.
func (r *Renderer) Catalog() *catalog.Catalog {
	return r.catalog
}

// unknownTemplateLabel is the metrics label for requests whose template did
// not resolve.
const unknownTemplateLabel = "unknown"

// Build resolves the template and lays the data out into a document tree.
func (r *Renderer) Build(req Request) (*Document, error) {
	doc, _, err := r.build(req)
	return doc, err
}

// build is Build that also returns the template ID to label metrics with.
func (r *Renderer) build(req Request) (*Document, string, error) {
	if req.Data == nil {
		return nil, unknownTemplateLabel, &InvalidDataError{Cause: errors.New("resume data is nil")}
	}

	id := req.TemplateID
	if id == "" {
		id = req.Data.TemplateID
	}
	tpl, err := r.catalog.Get(id)
	if err != nil {
		return nil, unknownTemplateLabel, err
	}

	doc, err := BuildDocument(req.Data, tpl, access.ShouldWatermark(tpl, req.Subscribed))
	return doc, tpl.ID, err
}

// Preview renders the interactive HTML representation.
func (r *Renderer) Preview(req Request) (string, error) {
	start := time.Now()
	doc, label, err := r.build(req)
	if err != nil {
		r.observe(label, FormatHTML, err, start)
		return "", err
	}

	html, err := ToHTML(doc)
	r.observe(label, FormatHTML, err, start)
	if err != nil {
		return "", err
	}
	return html, nil
}

// Download renders the fixed-page PDF. Identical requests produce
// byte-identical bodies.
func (r *Renderer) Download(req Request) (*Output, error) {
	start := time.Now()
	doc, label, err := r.build(req)
	if err != nil {
		r.observe(label, FormatPDF, err, start)
		return nil, err
	}

	out, err := r.DownloadDocument(doc, req.Data)
	r.observe(label, FormatPDF, err, start)
	return out, err
}

// DownloadDocument projects an already built document to PDF.
func (r *Renderer) DownloadDocument(doc *Document, data *types.ResumeData) (*Output, error) {
	body, pages, err := ToPDF(doc, r.pdf)
	if err != nil {
		return nil, err
	}
	return &Output{
		Filename:    data.Filename(FormatPDF),
		ContentType: ContentTypePDF,
		Body:        body,
		Pages:       pages,
		Watermark:   doc.Watermark,
	}, nil
}

func (r *Renderer) observe(templateID, format string, err error, start time.Time) {
	if r.recorder == nil {
		return
	}
	r.recorder.ObserveRender(templateID, format, Outcome(err), time.Since(start))
}

// Outcome classifies a render error for metrics and logs.
func Outcome(err error) string {
	var unknownTemplate *catalog.UnknownTemplateError
	var invalid *InvalidDataError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &unknownTemplate):
		return "unknown_template"
	case errors.As(err, &invalid):
		return "invalid_data"
	default:
		return "render_failure"
	}
}
