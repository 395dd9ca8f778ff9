package rendering

import (
	"fmt"
	"strconv"
	"strings"
)

// SectionKind identifies the content a section carries.
type SectionKind string

// Section kinds in canonical order.
const (
	KindSummary    SectionKind = "summary"
	KindExperience SectionKind = "experience"
	KindEducation  SectionKind = "education"
	KindSkills     SectionKind = "skills"
)

// Document is the projector-independent result of laying out a resume with
// one variant. Both the HTML preview and the PDF are derived from it, so they
// agree on sections, field text, date ranges and watermark by construction.
type Document struct {
	TemplateID string
	Layout     string
	Style      Style
	Watermark  bool
	Identity   Identity
	Main       []Section
	Sidebar    []Section
}

// Identity is the name and contact block at the top of the first page.
type Identity struct {
	Name    string
	Contact []string
}

// Section is one titled block of content.
type Section struct {
	Kind      SectionKind
	Title     string
	Paragraph string
	Entries   []Entry
	Groups    []SkillGroup
}

// Entry is an experience or education item.
type Entry struct {
	Heading      string // position or degree
	Organization string // company or school
	Location     string
	Dates        string
	Details      []string
	Description  string
}

// SkillGroup is an optionally labelled run of skills.
type SkillGroup struct {
	Label  string
	Skills []string
}

// Sections returns main-column sections followed by sidebar sections.
func (d *Document) Sections() []Section {
	out := make([]Section, 0, len(d.Main)+len(d.Sidebar))
	out = append(out, d.Main...)
	return append(out, d.Sidebar...)
}

// Section returns the section of the given kind, if it is shown.
func (d *Document) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections() {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// HasSection reports whether a section of the given kind is shown.
func (d *Document) HasSection(kind SectionKind) bool {
	_, ok := d.Section(kind)
	return ok
}

// Texts lists every literal string the document displays, in reading order.
// Used to check that projections agree on content.
func (d *Document) Texts() []string {
	out := []string{d.Identity.Name}
	out = append(out, d.Identity.Contact...)
	for _, s := range d.Sections() {
		out = append(out, s.Title)
		if s.Paragraph != "" {
			out = append(out, s.Paragraph)
		}
		for _, e := range s.Entries {
			for _, v := range []string{e.Heading, e.Organization, e.Location, e.Dates} {
				if v != "" {
					out = append(out, v)
				}
			}
			out = append(out, e.Details...)
			if e.Description != "" {
				out = append(out, e.Description)
			}
		}
		for _, g := range s.Groups {
			if g.Label != "" {
				out = append(out, g.Label)
			}
			out = append(out, g.Skills...)
		}
	}
	return out
}

// Color is an sRGB color.
type Color struct {
	R, G, B int
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses "#rrggbb".
func ParseHexColor(s string) (Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}

var (
	black = Color{R: 17, G: 24, B: 39}
	grey  = Color{R: 107, G: 114, B: 128}
	white = Color{R: 255, G: 255, B: 255}
)
