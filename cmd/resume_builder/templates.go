package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template catalog",
	Long:  "Lists catalog templates, optionally filtered by tier, category tag or a free-text query.",
	RunE:  runTemplates,
}

var (
	templatesPremium  string
	templatesCategory string
	templatesQuery    string
	templatesJSON     bool
)

func init() {
	templatesCmd.Flags().StringVar(&templatesPremium, "premium", "", "Only premium (true) or only free (false) templates")
	templatesCmd.Flags().StringVar(&templatesCategory, "category", "", "Only templates tagged with this category")
	templatesCmd.Flags().StringVarP(&templatesQuery, "query", "q", "", "Substring match over names and tags")
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print templates as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	filter := catalog.Filter{Category: templatesCategory, Query: templatesQuery}
	if templatesPremium != "" {
		premium, err := strconv.ParseBool(templatesPremium)
		if err != nil {
			return fmt.Errorf("invalid --premium %q: must be true or false", templatesPremium)
		}
		filter.Premium = &premium
	}

	templates := catalog.Default().List(filter)

	if templatesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(templates); err != nil {
			return fmt.Errorf("failed to encode templates: %w", err)
		}
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(templates)
	return nil
}
