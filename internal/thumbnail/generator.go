package thumbnail

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/rendering"
	"golang.org/x/sync/errgroup"
)

// Generator renders the sample resume with each template and turns the
// preview into a JPEG thumbnail.
type Generator struct {
	renderer    *rendering.Renderer
	capture     Capturer
	Width       int
	Quality     int
	Concurrency int
	Verbose     bool
}

// NewGenerator creates a generator with default size and quality.
func NewGenerator(r *rendering.Renderer, c Capturer) *Generator {
	return &Generator{
		renderer:    r,
		capture:     c,
		Width:       DefaultWidth,
		Quality:     DefaultQuality,
		Concurrency: 2,
	}
}

// Result describes one written thumbnail.
type Result struct {
	TemplateID string
	Path       string
	Size       int
}

// Generate produces the thumbnail for one template. Thumbnails show the
// template as a subscriber sees it, without the watermark.
func (g *Generator) Generate(ctx context.Context, templateID string) ([]byte, error) {
	data, err := catalog.SampleResume()
	if err != nil {
		return nil, err
	}

	html, err := g.renderer.Preview(rendering.Request{Data: data, TemplateID: templateID, Subscribed: true})
	if err != nil {
		return nil, err
	}

	shot, err := g.capture.Capture(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %s: %w", templateID, err)
	}
	return Optimize(shot, g.Width, g.Quality)
}

// OutputPath is where a template's thumbnail is written under dir. It uses
// the file name recorded in the catalog, or "<id>.jpg".
func OutputPath(dir string, t catalog.Template) string {
	name := filepath.Base(t.Thumbnail)
	if t.Thumbnail == "" || name == "." || name == "/" {
		name = t.ID + ".jpg"
	}
	return filepath.Join(dir, name)
}

// GenerateAll writes thumbnails for every template into dir. The first
// failure cancels the remaining work.
func (g *Generator) GenerateAll(ctx context.Context, templates []catalog.Template, dir string) ([]Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	results := make([]Result, len(templates))
	eg, ctx := errgroup.WithContext(ctx)
	if g.Concurrency > 0 {
		eg.SetLimit(g.Concurrency)
	}

	for i, t := range templates {
		i, t := i, t
		eg.Go(func() error {
			img, err := g.Generate(ctx, t.ID)
			if err != nil {
				return err
			}
			path := OutputPath(dir, t)
			if err := os.WriteFile(path, img, 0o644); err != nil {
				return fmt.Errorf("failed to write thumbnail: %w", err)
			}
			if g.Verbose {
				log.Printf("[THUMBNAIL] %s -> %s (%d bytes)", t.ID, path, len(img))
			}
			results[i] = Result{TemplateID: t.ID, Path: path, Size: len(img)}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
