package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the template catalog, preview and PDF rendering.
Accounts and stored resumes are enabled when DATABASE_URL and JWT_SECRET are set.
Subscription changes are enabled when ADMIN_API_KEY is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	port := settings.Port
	if servePort != 0 {
		port = servePort
	}

	metrics := observability.DefaultMetrics()
	renderer, err := newRenderer(rendering.WithRecorder(metrics))
	if err != nil {
		return err
	}

	cfg := server.Config{
		Port:       port,
		CORSOrigin: settings.CORSOrigin,
		AdminKey:   os.Getenv("ADMIN_API_KEY"),
		Renderer:   renderer,
		Metrics:    metrics,
		RateLimit:  ratelimit.LoadConfig(),
	}

	jwtConfig, err := config.NewJWTConfig()
	switch {
	case errors.Is(err, config.ErrJWTSecretMissing):
		log.Printf("[server] JWT_SECRET not set; every caller is anonymous")
	case err != nil:
		return fmt.Errorf("failed to create JWT config: %w", err)
	default:
		cfg.JWT = server.NewJWTService(jwtConfig)
	}

	if settings.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		database, err := db.Connect(ctx, settings.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if serveMigrate {
			if err := database.Migrate(ctx); err != nil {
				return err
			}
		}
		cfg.Store = database
	} else {
		log.Printf("[server] DATABASE_URL not set; running without persistence")
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

// newRenderer builds a renderer over the embedded catalog using the
// configured PDF settings.
func newRenderer(opts ...rendering.Option) (*rendering.Renderer, error) {
	pdfOpts := rendering.DefaultPDFOptions
	pdfOpts.Compress = !settings.Uncompressed
	opts = append([]rendering.Option{rendering.WithPDFOptions(pdfOpts)}, opts...)

	r, err := rendering.New(catalog.Default(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r, nil
}
