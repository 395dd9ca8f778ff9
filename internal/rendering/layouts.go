package rendering

import (
	"sort"
)

// Style is the visual tuning of a layout variant. PDF text is drawn with the
// embedded fonts so output does not depend on the host's font files.
type Style struct {
	BodyFont    string // registered PDF font family
	HeadingFont string
	CSSBody     string // CSS font-family stack for the preview
	CSSHeading  string

	Text   Color
	Muted  Color
	Accent Color

	NameSize    float64 // points
	HeadingSize float64
	BodySize    float64

	CenterHeader bool
	HeaderBand   bool // name block drawn on an accent-filled band
	UpperHeading bool
	HeadingRule  bool
	BulletSkills bool // one skill per bulleted line instead of a comma run

	// SidebarWidth is the sidebar column width in mm; zero means single column.
	SidebarWidth float64
	SidebarLeft  bool
	SidebarFill  Color
	SidebarText  Color
}

// HasSidebar reports whether the style lays out two columns.
func (s Style) HasSidebar() bool {
	return s.SidebarWidth > 0
}

// LayoutVariant is one visual template family. Variants share the data
// contract and differ only in styling, column placement, titles and grouping.
type LayoutVariant interface {
	Name() string
	Style() Style
	// Arrange places the canonical sections into the main column and the
	// sidebar. It must not invent or drop content.
	Arrange(sections []Section) (main, sidebar []Section)
}

// variant is a table-driven LayoutVariant.
type variant struct {
	name    string
	style   Style
	titles  map[SectionKind]string
	order   []SectionKind
	sidebar map[SectionKind]bool
}

func (v *variant) Name() string { return v.name }

func (v *variant) Style() Style { return v.style }

func (v *variant) Arrange(sections []Section) (main, sidebar []Section) {
	ordered := make([]Section, 0, len(sections))
	for _, kind := range v.order {
		for _, s := range sections {
			if s.Kind == kind {
				ordered = append(ordered, s)
			}
		}
	}

	for _, s := range ordered {
		if t, ok := v.titles[s.Kind]; ok {
			s.Title = t
		}
		if v.sidebar[s.Kind] && v.style.HasSidebar() {
			sidebar = append(sidebar, s)
		} else {
			main = append(main, s)
		}
	}
	return main, sidebar
}

// techLayout regroups the flat skills list into three positional groups.
type techLayout struct {
	variant
}

// Tech skill group labels in cut order.
var techSkillLabels = [3]string{"Programming", "Tools & Frameworks", "Other Skills"}

func (t *techLayout) Arrange(sections []Section) (main, sidebar []Section) {
	main, sidebar = t.variant.Arrange(sections)
	regroup := func(list []Section) {
		for i := range list {
			if list[i].Kind != KindSkills {
				continue
			}
			var flat []string
			for _, g := range list[i].Groups {
				flat = append(flat, g.Skills...)
			}
			list[i].Groups = PartitionSkills(flat, techSkillLabels)
		}
	}
	regroup(main)
	regroup(sidebar)
	return main, sidebar
}

var canonicalOrder = []SectionKind{KindSummary, KindExperience, KindEducation, KindSkills}

var layouts = map[string]LayoutVariant{}

func register(v LayoutVariant) {
	layouts[v.Name()] = v
}

// LookupLayout returns the registered variant for a catalog layout name.
func LookupLayout(name string) (LayoutVariant, bool) {
	v, ok := layouts[name]
	return v, ok
}

// LayoutNames returns the registered variant names, sorted.
func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for n := range layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	register(&variant{
		name: "basic",
		style: Style{
			BodyFont: fontSans, HeadingFont: fontSans,
			CSSBody: `Helvetica, Arial, sans-serif`, CSSHeading: `Helvetica, Arial, sans-serif`,
			Text: black, Muted: grey, Accent: black,
			NameSize: 22, HeadingSize: 13, BodySize: 10,
			HeadingRule: true,
		},
		order: canonicalOrder,
	})

	register(&variant{
		name: "classic",
		style: Style{
			BodyFont: fontSans, HeadingFont: fontSans,
			CSSBody: `"Times New Roman", Times, serif`, CSSHeading: `"Times New Roman", Times, serif`,
			Text: black, Muted: Color{R: 75, G: 85, B: 99}, Accent: black,
			NameSize: 24, HeadingSize: 12, BodySize: 10.5,
			CenterHeader: true, UpperHeading: true, HeadingRule: true, BulletSkills: true,
		},
		order: canonicalOrder,
	})

	register(&variant{
		name: "modern",
		style: Style{
			BodyFont: fontSans, HeadingFont: fontSans,
			CSSBody: `"Inter", "Segoe UI", Arial, sans-serif`, CSSHeading: `"Inter", "Segoe UI", Arial, sans-serif`,
			Text: black, Muted: grey, Accent: Color{R: 37, G: 99, B: 235},
			NameSize: 24, HeadingSize: 12, BodySize: 10,
			HeaderBand: true, UpperHeading: true,
			SidebarWidth: 55, SidebarFill: Color{R: 243, G: 244, B: 246}, SidebarText: black,
		},
		titles:  map[SectionKind]string{KindSummary: "Profile"},
		order:   canonicalOrder,
		sidebar: map[SectionKind]bool{KindEducation: true, KindSkills: true},
	})

	register(&variant{
		name: "creative",
		style: Style{
			BodyFont: fontSans, HeadingFont: fontSans,
			CSSBody: `"Poppins", "Trebuchet MS", sans-serif`, CSSHeading: `"Poppins", "Trebuchet MS", sans-serif`,
			Text: black, Muted: grey, Accent: Color{R: 124, G: 58, B: 237},
			NameSize: 26, HeadingSize: 13, BodySize: 10,
			SidebarWidth: 55, SidebarLeft: true,
			SidebarFill: Color{R: 124, G: 58, B: 237}, SidebarText: white,
		},
		titles:  map[SectionKind]string{KindSummary: "About Me", KindSkills: "Skills & Tools"},
		order:   canonicalOrder,
		sidebar: map[SectionKind]bool{KindSkills: true},
	})

	register(&variant{
		name: "executive",
		style: Style{
			BodyFont: fontSans, HeadingFont: fontSans,
			CSSBody: `Georgia, "Times New Roman", serif`, CSSHeading: `Helvetica, Arial, sans-serif`,
			Text: black, Muted: grey, Accent: Color{R: 30, G: 58, B: 95},
			NameSize: 26, HeadingSize: 12, BodySize: 10.5,
			UpperHeading: true, HeadingRule: true,
		},
		titles: map[SectionKind]string{
			KindSummary:    "Executive Summary",
			KindExperience: "Professional Experience",
			KindSkills:     "Core Competencies",
		},
		order: canonicalOrder,
	})

	register(&techLayout{variant{
		name: "tech",
		style: Style{
			BodyFont: fontSans, HeadingFont: fontSans,
			CSSBody: `"Segoe UI", Roboto, Arial, sans-serif`, CSSHeading: `"JetBrains Mono", "Courier New", monospace`,
			Text: black, Muted: grey, Accent: Color{R: 5, G: 150, B: 105},
			NameSize: 22, HeadingSize: 12, BodySize: 10,
			HeadingRule: true,
		},
		titles: map[SectionKind]string{KindSkills: "Technical Skills"},
		order:  []SectionKind{KindSummary, KindSkills, KindExperience, KindEducation},
	}})
}
