// Package observability provides Prometheus metrics and formatted output
// utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a short summary of the input resume.
func (p *Printer) PrintResume(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:       %s\n", data.PersonalInfo.FullName())
	fmt.Fprintf(&sb, "Template:   %s\n", data.TemplateID)
	fmt.Fprintf(&sb, "Summary:    %v\n", data.HasSummary())
	fmt.Fprintf(&sb, "Experience: %d\n", len(data.Experience))
	fmt.Fprintf(&sb, "Education:  %d\n", len(data.Education))
	fmt.Fprintf(&sb, "Skills:     %d", len(data.Skills))

	p.printBox("RESUME DATA", sb.String())
}

// PrintDocumentOutline outputs the section structure of a laid-out document.
func (p *Printer) PrintDocumentOutline(doc *rendering.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Template:  %s (%s layout)\n", doc.TemplateID, doc.Layout)
	fmt.Fprintf(&sb, "Watermark: %v\n\n", doc.Watermark)

	column := func(name string, sections []rendering.Section) {
		if len(sections) == 0 {
			return
		}
		fmt.Fprintf(&sb, "%s:\n", name)
		for _, s := range sections {
			fmt.Fprintf(&sb, "  • %s", s.Title)
			switch {
			case len(s.Entries) > 0:
				fmt.Fprintf(&sb, " (%d entries)", len(s.Entries))
			case len(s.Groups) > 0:
				labels := make([]string, 0, len(s.Groups))
				for _, g := range s.Groups {
					if g.Label != "" {
						labels = append(labels, fmt.Sprintf("%s %d", g.Label, len(g.Skills)))
					} else {
						labels = append(labels, fmt.Sprintf("%d skills", len(g.Skills)))
					}
				}
				fmt.Fprintf(&sb, " [%s]", strings.Join(labels, ", "))
			}
			sb.WriteString("\n")
		}
	}
	column("Main", doc.Main)
	column("Sidebar", doc.Sidebar)

	p.printBox("DOCUMENT OUTLINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutput outputs where a rendered file was written.
func (p *Printer) PrintOutput(path string, out *rendering.Output) {
	if out == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:      %s\n", path)
	fmt.Fprintf(&sb, "Type:      %s\n", out.ContentType)
	fmt.Fprintf(&sb, "Size:      %d bytes\n", len(out.Body))
	fmt.Fprintf(&sb, "Pages:     %d\n", out.Pages)
	fmt.Fprintf(&sb, "Watermark: %v", out.Watermark)

	p.printBox("RENDERED OUTPUT", sb.String())
}

// PrintTemplates outputs a catalog listing.
func (p *Printer) PrintTemplates(templates []catalog.Template) {
	if len(templates) == 0 {
		p.printBox("TEMPLATES", "No templates match")
		return
	}

	var sb strings.Builder
	for i, t := range templates {
		tier := "free"
		if t.IsPremium {
			tier = "premium"
		}
		fmt.Fprintf(&sb, "%-14s %-8s %s\n", t.ID, tier, t.Name)
		fmt.Fprintf(&sb, "  [%s]", strings.Join(t.Category, ", "))
		if i < len(templates)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("TEMPLATES (%d)", len(templates)), sb.String())
}

// PrintViolations outputs any disagreement between the projections.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations []validation.Violation) {
	if len(violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ PREVIEW AND PDF AGREE")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d violations:\n\n", len(violations))

	count := min(len(violations), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		v := violations[i]
		fmt.Fprintf(&sb, "⚠ %s: %s\n", v.Projection, v.Reason)
		if v.Text != "" {
			fmt.Fprintf(&sb, "  %q\n", truncate(v.Text, 45))
		}
	}
	if len(violations) > count {
		fmt.Fprintf(&sb, "... and %d more", len(violations)-count)
	}

	p.printBox("PROJECTION VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
