package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/thumbnail"
	"github.com/spf13/cobra"
)

var thumbnailsCmd = &cobra.Command{
	Use:   "thumbnails",
	Short: "Generate catalog thumbnails",
	Long: `Renders the sample resume with each catalog template and screenshots the
preview with headless Chrome. Requires Chrome or Chromium (set CHROME_PATH or
chrome_path in the config file to pick a binary).`,
	RunE: runThumbnails,
}

var (
	thumbnailsOut         string
	thumbnailsTemplate    string
	thumbnailsWidth       int
	thumbnailsQuality     int
	thumbnailsConcurrency int
	thumbnailsTimeout     time.Duration
)

func init() {
	thumbnailsCmd.Flags().StringVarP(&thumbnailsOut, "out", "o", "", "Output directory (default from config)")
	thumbnailsCmd.Flags().StringVarP(&thumbnailsTemplate, "template", "t", "", "Only generate this template's thumbnail")
	thumbnailsCmd.Flags().IntVar(&thumbnailsWidth, "width", 0, "Thumbnail width in pixels (default from config)")
	thumbnailsCmd.Flags().IntVar(&thumbnailsQuality, "quality", 0, "JPEG quality 1-100 (default from config)")
	thumbnailsCmd.Flags().IntVar(&thumbnailsConcurrency, "concurrency", 2, "Browsers to run at once")
	thumbnailsCmd.Flags().DurationVar(&thumbnailsTimeout, "timeout", 60*time.Second, "Per-template capture timeout")
	rootCmd.AddCommand(thumbnailsCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runThumbnails(cmd *cobra.Command, _ []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	templates := renderer.Catalog().List(catalog.Filter{})
	if thumbnailsTemplate != "" {
		t, err := renderer.Catalog().Get(thumbnailsTemplate)
		if err != nil {
			return err
		}
		templates = []catalog.Template{t}
	}

	gen := thumbnail.NewGenerator(renderer, thumbnail.NewChromeCapturer(settings.ChromePath, thumbnailsTimeout, settings.Verbose))
	gen.Width = firstPositive(thumbnailsWidth, settings.ThumbnailWidth)
	gen.Quality = firstPositive(thumbnailsQuality, settings.ThumbnailQuality)
	gen.Concurrency = thumbnailsConcurrency
	gen.Verbose = settings.Verbose

	dir := thumbnailsOut
	if dir == "" {
		dir = settings.ThumbnailDir
	}

	results, err := gen.GenerateAll(context.Background(), templates, dir)
	if err != nil {
		return fmt.Errorf("failed to generate thumbnails: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%-14s %s (%d bytes)\n", r.TemplateID, r.Path, r.Size)
	}
	fmt.Fprintf(out, "Generated %d thumbnail(s) in %s\n", len(results), dir)
	return nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
