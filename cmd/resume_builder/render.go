package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	formatBoth = "both"

	// renderConcurrency bounds --all-templates.
	renderConcurrency = 4
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render resume data to PDF and/or HTML",
	Long: `Render a ResumeData JSON file with one template, or with every catalog
template when --all-templates is set. --verify checks that the preview and the
PDF show the same content and the same watermark state.`,
	RunE: runRender,
}

var (
	renderInput        string
	renderTemplate     string
	renderSubscribed   bool
	renderFormat       string
	renderOutDir       string
	renderAllTemplates bool
	renderVerify       bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to ResumeData JSON file (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template ID (default: the data's templateId)")
	renderCmd.Flags().BoolVar(&renderSubscribed, "subscribed", false, "Render as a subscribed user (no watermark)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", rendering.FormatPDF, "Output format: pdf, html or both")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "", "Output directory (default from config)")
	renderCmd.Flags().BoolVar(&renderAllTemplates, "all-templates", false, "Render with every catalog template")
	renderCmd.Flags().BoolVar(&renderVerify, "verify", false, "Check the preview and PDF agree")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(renderCmd)
}

// renderJob is the outcome of rendering with one template.
type renderJob struct {
	templateID string
	doc        *rendering.Document
	pdf        *rendering.Output
	pdfPath    string
	htmlPath   string
	violations []validation.Violation
}

func runRender(cmd *cobra.Command, _ []string) error {
	switch renderFormat {
	case rendering.FormatPDF, rendering.FormatHTML, formatBoth:
	default:
		return fmt.Errorf("invalid --format %q: must be pdf, html or both", renderFormat)
	}

	data, err := readResumeFile(renderInput)
	if err != nil {
		return err
	}
	outDir := renderOutDir
	if outDir == "" {
		outDir = settings.OutputDir
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	var templateIDs []string
	if renderAllTemplates {
		for _, t := range renderer.Catalog().List(catalog.Filter{}) {
			templateIDs = append(templateIDs, t.ID)
		}
	} else {
		id := renderTemplate
		if id == "" {
			id = data.TemplateID
		}
		templateIDs = []string{id}
	}

	jobs := make([]*renderJob, len(templateIDs))
	eg := new(errgroup.Group)
	eg.SetLimit(renderConcurrency)
	for i, id := range templateIDs {
		dir := outDir
		if renderAllTemplates {
			dir = filepath.Join(outDir, id)
		}
		eg.Go(func() error {
			job, err := renderWithTemplate(renderer, data, id, dir)
			if err != nil {
				return fmt.Errorf("template %s: %w", id, err)
			}
			jobs[i] = job
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	return reportJobs(cmd.OutOrStdout(), data, jobs)
}

// renderWithTemplate builds the document once and projects it to every
// requested format, so --verify compares projections of the same tree.
func renderWithTemplate(r *rendering.Renderer, data *types.ResumeData, templateID, dir string) (*renderJob, error) {
	doc, err := r.Build(rendering.Request{Data: data, TemplateID: templateID, Subscribed: renderSubscribed})
	if err != nil {
		return nil, err
	}
	job := &renderJob{templateID: templateID, doc: doc}

	wantHTML := renderFormat != rendering.FormatPDF || renderVerify
	wantPDF := renderFormat != rendering.FormatHTML || renderVerify

	var html string
	if wantHTML {
		if html, err = rendering.ToHTML(doc); err != nil {
			return nil, err
		}
	}
	if wantPDF {
		if job.pdf, err = r.DownloadDocument(doc, data); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if renderFormat != rendering.FormatPDF {
		job.htmlPath = filepath.Join(dir, data.Filename(rendering.FormatHTML))
		if err := os.WriteFile(job.htmlPath, []byte(html), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write preview: %w", err)
		}
	}
	if renderFormat != rendering.FormatHTML {
		job.pdfPath = filepath.Join(dir, job.pdf.Filename)
		if err := os.WriteFile(job.pdfPath, job.pdf.Body, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write pdf: %w", err)
		}
	}

	if renderVerify {
		if job.violations, err = validation.CheckAgreement(doc, html, job.pdf.Body); err != nil {
			return nil, err
		}
	}
	return job, nil
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func reportJobs(out io.Writer, data *types.ResumeData, jobs []*renderJob) error {
	printer := observability.NewPrinter(out)
	if settings.Verbose {
		printer.PrintResume(data)
	}

	disagreeing := 0
	for _, job := range jobs {
		if settings.Verbose {
			printer.PrintDocumentOutline(job.doc)
			if job.pdfPath != "" {
				printer.PrintOutput(job.pdfPath, job.pdf)
			}
		}
		if job.pdfPath != "" {
			fmt.Fprintf(out, "Rendered %s (%d pages, watermark: %t)\n", job.pdfPath, job.pdf.Pages, job.pdf.Watermark)
		}
		if job.htmlPath != "" {
			fmt.Fprintf(out, "Rendered %s (watermark: %t)\n", job.htmlPath, job.doc.Watermark)
		}
		if renderVerify {
			if settings.Verbose || len(job.violations) > 0 {
				printer.PrintViolations(job.violations)
			}
			if len(job.violations) > 0 {
				disagreeing++
			}
		}
	}

	if disagreeing > 0 {
		return fmt.Errorf("preview and PDF disagree for %d template(s)", disagreeing)
	}
	if renderVerify {
		fmt.Fprintf(out, "Verified %d template(s): preview and PDF agree\n", len(jobs))
	}
	return nil
}

// readResumeFile loads a ResumeData JSON file, checking it against the
// schema first so errors name JSON paths. Data without a templateId gets
// the configured default template.
func readResumeFile(path string) (*types.ResumeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume data: %w", err)
	}
	if raw, err = withDefaultTemplate(raw, settings.DefaultTemplate); err != nil {
		return nil, err
	}
	if err := schemas.ValidateResume(raw); err != nil {
		return nil, err
	}

	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse resume data: %w", err)
	}
	data.Skills = types.NormalizeSkills(data.Skills)
	return &data, nil
}

func withDefaultTemplate(raw []byte, templateID string) ([]byte, error) {
	if templateID == "" {
		return raw, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse resume data: %w", err)
	}
	if existing, ok := fields["templateId"]; ok && string(existing) != `""` && string(existing) != "null" {
		return raw, nil
	}

	id, err := json.Marshal(templateID)
	if err != nil {
		return nil, err
	}
	fields["templateId"] = id
	return json.Marshal(fields)
}
