// Package main provides the resume_builder CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool

	// settings is the merged configuration: defaults, then --config, then env.
	settings config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume Builder rendering service",
	Long: "Resume Builder lays out resume data with a catalog of templates and renders an " +
		"HTML preview and a fixed-page A4 PDF. Premium templates are watermarked for unsubscribed users.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed output")
}

func loadSettings(_ *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Defaults)
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	settings = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
