package rendering

import (
	"bytes"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	pageMargin = 15.0
	columnGap  = 6.0
	sidebarPad = 3.0
)

const (
	watermarkText  = "PREMIUM"
	watermarkAlpha = 0.15
	watermarkSize  = 96.0
	lineSpacing    = 1.3
	ptToMM         = 25.4 / 72
	narrowColumn   = 80.0
)

// documentDate is stamped into every PDF so identical inputs produce
// identical bytes.
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDFOptions tunes the fixed-page projection.
type PDFOptions struct {
	// Compress deflates page content streams.
	Compress bool
	// Creator is written to the document info dictionary.
	Creator string
}

// DefaultPDFOptions are used when the renderer is not configured otherwise.
var DefaultPDFOptions = PDFOptions{Compress: true, Creator: "resume-builder"}

// textLine is one laid-out row.
type textLine struct {
	text   string
	right  string
	font   string
	style  string
	size   float64
	color  Color
	muted  Color
	indent float64
	align  string
	height float64
	rule   bool
	space  bool // vertical gap, dropped at the top of a page
	keep   bool // keep with the following line
}

type placed struct {
	textLine
	y float64
}

type box struct {
	x, w float64
}

type palette struct {
	text, muted, accent Color
}

// pdfComposer turns sections into rows measured with the document's fonts.
type pdfComposer struct {
	f     *fpdf.Fpdf
	style Style
}

func lineHeight(size float64) float64 {
	return size * ptToMM * lineSpacing
}

func (c *pdfComposer) wrap(text, font, style string, size, width float64) []string {
	c.f.SetFont(font, style, size)
	var out []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		out = append(out, c.f.SplitText(para, width)...)
	}
	return out
}

func (c *pdfComposer) textLines(text, font, style string, size, width float64, color Color, align string) []textLine {
	var out []textLine
	for _, l := range c.wrap(text, font, style, size, width) {
		out = append(out, textLine{
			text: l, font: font, style: style, size: size,
			color: color, align: align, height: lineHeight(size),
		})
	}
	return out
}

func spacer(h float64) textLine {
	return textLine{space: true, height: h}
}

func (c *pdfComposer) header(id Identity, width float64, onBand bool) []textLine {
	s := c.style
	align := "L"
	if s.CenterHeader {
		align = "C"
	}
	nameColor, contactColor := s.Accent, s.Muted
	if onBand {
		nameColor, contactColor = white, white
	}

	out := c.textLines(id.Name, s.HeadingFont, "B", s.NameSize, width, nameColor, align)
	if len(id.Contact) > 0 {
		out = append(out, spacer(1))
		out = append(out, c.textLines(strings.Join(id.Contact, " | "), s.BodyFont, "", s.BodySize, width, contactColor, align)...)
	}
	return out
}

func (c *pdfComposer) section(sec Section, width float64, p palette) []textLine {
	s := c.style
	out := []textLine{spacer(4)}

	title := sec.Title
	if s.UpperHeading {
		title = strings.ToUpper(title)
	}
	heads := c.textLines(title, s.HeadingFont, "B", s.HeadingSize, width, p.accent, "L")
	for i := range heads {
		heads[i].keep = true
	}
	out = append(out, heads...)
	if s.HeadingRule {
		out = append(out, textLine{rule: true, color: p.accent, height: 2.5, keep: true})
	} else {
		out = append(out, textLine{space: true, height: 1.5, keep: true})
	}

	if sec.Paragraph != "" {
		out = append(out, c.textLines(sec.Paragraph, s.BodyFont, "", s.BodySize, width, p.text, "L")...)
	}

	for i, e := range sec.Entries {
		if i > 0 {
			out = append(out, spacer(2.5))
		}
		out = append(out, c.entry(e, width, p)...)
	}

	for _, g := range sec.Groups {
		out = append(out, c.skillGroup(g, width, p)...)
	}
	return out
}

func (c *pdfComposer) entry(e Entry, width float64, p palette) []textLine {
	s := c.style
	var out []textLine

	narrow := width < narrowColumn
	titleWidth := width
	if !narrow && e.Dates != "" {
		c.f.SetFont(s.BodyFont, "", s.BodySize)
		titleWidth = width - c.f.GetStringWidth(e.Dates) - 4
	}

	heads := c.textLines(e.Heading, s.BodyFont, "B", s.BodySize, titleWidth, p.text, "L")
	for i := range heads {
		heads[i].keep = true
	}
	if len(heads) > 0 && !narrow {
		heads[0].right = e.Dates
		heads[0].muted = p.muted
	}
	out = append(out, heads...)
	if narrow && e.Dates != "" {
		dates := c.textLines(e.Dates, s.BodyFont, "", s.BodySize, width, p.muted, "L")
		for i := range dates {
			dates[i].keep = true
		}
		out = append(out, dates...)
	}

	org := e.Organization
	if e.Location != "" {
		org += ", " + e.Location
	}
	out = append(out, c.textLines(org, s.BodyFont, "I", s.BodySize, width, p.text, "L")...)
	for _, d := range e.Details {
		out = append(out, c.textLines(d, s.BodyFont, "", s.BodySize, width, p.muted, "L")...)
	}
	if e.Description != "" {
		out = append(out, spacer(1))
		out = append(out, c.textLines(e.Description, s.BodyFont, "", s.BodySize, width, p.text, "L")...)
	}
	return out
}

func (c *pdfComposer) skillGroup(g SkillGroup, width float64, p palette) []textLine {
	s := c.style
	var out []textLine
	if g.Label != "" {
		out = append(out, spacer(1))
		labels := c.textLines(g.Label, s.BodyFont, "B", s.BodySize, width, p.text, "L")
		for i := range labels {
			labels[i].keep = true
		}
		out = append(out, labels...)
	}

	switch {
	case s.BulletSkills:
		for _, sk := range g.Skills {
			lines := c.textLines(sk, s.BodyFont, "", s.BodySize, width-4, p.text, "L")
			for i := range lines {
				lines[i].indent = 4
			}
			if len(lines) > 0 {
				lines[0].text = "• " + lines[0].text
				lines[0].indent = 1
			}
			out = append(out, lines...)
		}
	case width < narrowColumn:
		for _, sk := range g.Skills {
			out = append(out, c.textLines(sk, s.BodyFont, "", s.BodySize, width, p.text, "L")...)
		}
	default:
		out = append(out, c.textLines(strings.Join(g.Skills, ", "), s.BodyFont, "", s.BodySize, width, p.text, "L")...)
	}
	return out
}

// paginate assigns rows to pages. A row flagged keep is moved to the next
// page together with the rows that follow it when they would not fit.
func paginate(lines []textLine, firstTop, top, bottom float64) [][]placed {
	pages := [][]placed{nil}
	y := firstTop
	pageTop := firstTop

	for i, l := range lines {
		if l.space && y == pageTop {
			continue
		}

		need := l.height
		if l.keep {
			for j := i + 1; j < len(lines); j++ {
				need += lines[j].height
				if !lines[j].keep {
					break
				}
			}
			if need > bottom-top {
				need = l.height
			}
		}

		if y+need > bottom && y > pageTop {
			pages = append(pages, nil)
			y, pageTop = top, top
			if l.space {
				continue
			}
		}

		pages[len(pages)-1] = append(pages[len(pages)-1], placed{textLine: l, y: y})
		y += l.height
	}
	return pages
}

func columnBoxes(s Style) (main, side box) {
	content := pageWidth - 2*pageMargin
	if !s.HasSidebar() {
		return box{x: pageMargin, w: content}, box{}
	}
	mainW := content - s.SidebarWidth - columnGap
	if s.SidebarLeft {
		return box{x: pageMargin + s.SidebarWidth + columnGap, w: mainW}, box{x: pageMargin, w: s.SidebarWidth}
	}
	return box{x: pageMargin, w: mainW}, box{x: pageMargin + mainW + columnGap, w: s.SidebarWidth}
}

// ToPDF projects the document onto A4 pages. Content that does not fit on
// one page continues on the next; the watermark is stamped on every page.
// It returns the encoded document and its page count. On failure no bytes
// are returned.
func ToPDF(doc *Document, opts PDFOptions) ([]byte, int, error) {
	s := doc.Style
	if err := checkGlyphs(doc.Texts()); err != nil {
		return nil, 0, &RenderError{Message: "resume text cannot be drawn in the PDF font", Cause: err}
	}

	f := fpdf.New("P", "mm", "A4", "")
	registerFonts(f)
	f.SetMargins(pageMargin, pageMargin, pageMargin)
	f.SetAutoPageBreak(false, 0)
	f.SetCompression(opts.Compress)
	f.SetCatalogSort(true)
	f.SetCreationDate(documentDate)
	f.SetModificationDate(documentDate)
	f.SetTitle(doc.Identity.Name+" - Resume", true)
	f.SetAuthor(doc.Identity.Name, true)
	f.SetSubject(doc.TemplateID, true)
	if opts.Creator != "" {
		f.SetCreator(opts.Creator, true)
	}

	c := &pdfComposer{f: f, style: s}
	mainBox, sideBox := columnBoxes(s)

	header := c.header(doc.Identity, pageWidth-2*pageMargin, s.HeaderBand)
	headerPages := paginate(header, pageMargin, pageMargin, pageHeight-pageMargin)
	headerBottom := pageMargin
	if hp := headerPages[0]; len(hp) > 0 {
		last := hp[len(hp)-1]
		headerBottom = last.y + last.height
	}
	if s.HeaderBand {
		headerBottom += 4
	}
	bodyTop := headerBottom + 4
	bottom := pageHeight - pageMargin

	mainPal := palette{text: s.Text, muted: s.Muted, accent: s.Accent}
	sidePal := mainPal
	if s.SidebarText == white {
		sidePal = palette{text: white, muted: white, accent: white}
	}

	var mainLines, sideLines []textLine
	for _, sec := range doc.Main {
		mainLines = append(mainLines, c.section(sec, mainBox.w, mainPal)...)
	}
	for _, sec := range doc.Sidebar {
		sideLines = append(sideLines, c.section(sec, sideBox.w-2*sidebarPad, sidePal)...)
	}
	mainPages := paginate(mainLines, bodyTop, pageMargin, bottom)
	sidePages := paginate(sideLines, bodyTop, pageMargin, bottom)

	pages := len(mainPages)
	if len(sidePages) > pages {
		pages = len(sidePages)
	}

	for p := 0; p < pages; p++ {
		f.AddPage()

		if s.HasSidebar() && s.SidebarFill != (Color{}) {
			top := 0.0
			if p == 0 {
				top = headerBottom
			}
			f.SetFillColor(s.SidebarFill.R, s.SidebarFill.G, s.SidebarFill.B)
			if s.SidebarLeft {
				f.Rect(0, top, sideBox.x+sideBox.w, pageHeight-top, "F")
			} else {
				f.Rect(sideBox.x, top, pageWidth-sideBox.x, pageHeight-top, "F")
			}
		}

		if p == 0 {
			if s.HeaderBand {
				f.SetFillColor(s.Accent.R, s.Accent.G, s.Accent.B)
				f.Rect(0, 0, pageWidth, headerBottom, "F")
			}
			for _, l := range headerPages[0] {
				drawLine(f, l, box{x: pageMargin, w: pageWidth - 2*pageMargin})
			}
		}

		if p < len(mainPages) {
			for _, l := range mainPages[p] {
				drawLine(f, l, mainBox)
			}
		}
		if p < len(sidePages) {
			inner := box{x: sideBox.x + sidebarPad, w: sideBox.w - 2*sidebarPad}
			for _, l := range sidePages[p] {
				drawLine(f, l, inner)
			}
		}

		if doc.Watermark {
			drawWatermark(f)
		}
	}

	if f.Err() {
		return nil, 0, &RenderError{Message: "failed to lay out PDF", Cause: f.Error()}
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, 0, &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), pages, nil
}

func drawLine(f *fpdf.Fpdf, l placed, b box) {
	switch {
	case l.space:
		return
	case l.rule:
		f.SetDrawColor(l.color.R, l.color.G, l.color.B)
		f.SetLineWidth(0.3)
		mid := l.y + l.height/2
		f.Line(b.x, mid, b.x+b.w, mid)
		return
	}

	f.SetFont(l.font, l.style, l.size)
	f.SetTextColor(l.color.R, l.color.G, l.color.B)
	f.SetXY(b.x+l.indent, l.y)
	f.CellFormat(b.w-l.indent, l.height, l.text, "", 0, l.align, false, 0, "")

	if l.right != "" {
		f.SetFont(l.font, "", l.size)
		f.SetTextColor(l.muted.R, l.muted.G, l.muted.B)
		f.SetXY(b.x, l.y)
		f.CellFormat(b.w, l.height, l.right, "", 0, "R", false, 0, "")
	}
}

// drawWatermark stamps a translucent diagonal label across the page centre,
// over everything already drawn.
func drawWatermark(f *fpdf.Fpdf) {
	cx, cy := pageWidth/2, pageHeight/2

	f.SetAlpha(watermarkAlpha, "Normal")
	f.SetFont(fontSans, "B", watermarkSize)
	f.SetTextColor(150, 150, 150)
	w := f.GetStringWidth(watermarkText)

	f.TransformBegin()
	f.TransformRotate(45, cx, cy)
	f.Text(cx-w/2, cy+watermarkSize*ptToMM/3, watermarkText)
	f.TransformEnd()
	f.SetAlpha(1, "Normal")
}
