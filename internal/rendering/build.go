package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/types"
)

// Default section titles before a variant retitles them.
const (
	titleSummary    = "Summary"
	titleExperience = "Experience"
	titleEducation  = "Education"
	titleSkills     = "Skills"
)

// BuildDocument lays out resume data with the template's variant. The data
// must already be valid; it is read but never modified.
func BuildDocument(data *types.ResumeData, tpl catalog.Template, watermark bool) (*Document, error) {
	if err := data.Validate(); err != nil {
		return nil, &InvalidDataError{Cause: err}
	}

	v, ok := LookupLayout(tpl.Layout)
	if !ok {
		return nil, &UnknownLayoutError{TemplateID: tpl.ID, Layout: tpl.Layout}
	}

	style := v.Style()
	if c, ok := ParseHexColor(tpl.Accent); ok {
		style.Accent = c
		if style.SidebarFill != (Color{}) && style.SidebarText == white {
			style.SidebarFill = c
		}
	}

	main, sidebar := v.Arrange(canonicalSections(data))
	return &Document{
		TemplateID: tpl.ID,
		Layout:     v.Name(),
		Style:      style,
		Watermark:  watermark,
		Identity: Identity{
			Name:    data.PersonalInfo.FullName(),
			Contact: data.PersonalInfo.ContactLine(),
		},
		Main:    main,
		Sidebar: sidebar,
	}, nil
}

// canonicalSections builds the shown sections in canonical order. Empty
// sections are left out entirely.
func canonicalSections(data *types.ResumeData) []Section {
	var sections []Section

	if data.HasSummary() {
		sections = append(sections, Section{
			Kind:      KindSummary,
			Title:     titleSummary,
			Paragraph: strings.TrimSpace(data.Summary),
		})
	}

	if len(data.Experience) > 0 {
		s := Section{Kind: KindExperience, Title: titleExperience}
		for i := range data.Experience {
			e := &data.Experience[i]
			s.Entries = append(s.Entries, Entry{
				Heading:      strings.TrimSpace(e.Position),
				Organization: strings.TrimSpace(e.Company),
				Location:     strings.TrimSpace(e.Location),
				Dates:        e.DateRange(),
				Description:  strings.TrimSpace(e.Description),
			})
		}
		sections = append(sections, s)
	}

	if len(data.Education) > 0 {
		s := Section{Kind: KindEducation, Title: titleEducation}
		for i := range data.Education {
			e := &data.Education[i]
			var details []string
			if f := strings.TrimSpace(e.FieldOfStudy); f != "" {
				details = append(details, f)
			}
			if g := strings.TrimSpace(e.GPA); g != "" {
				details = append(details, "GPA: "+g)
			}
			s.Entries = append(s.Entries, Entry{
				Heading:      strings.TrimSpace(e.Degree),
				Organization: strings.TrimSpace(e.School),
				Location:     strings.TrimSpace(e.Location),
				Dates:        e.DateRange(),
				Details:      details,
				Description:  strings.TrimSpace(e.Description),
			})
		}
		sections = append(sections, s)
	}

	var skills []string
	for _, sk := range data.Skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			skills = append(skills, sk)
		}
	}
	if len(skills) > 0 {
		sections = append(sections, Section{
			Kind:   KindSkills,
			Title:  titleSkills,
			Groups: []SkillGroup{{Skills: skills}},
		})
	}

	return sections
}
