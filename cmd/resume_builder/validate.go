package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate resume data",
	Long:  "Checks a ResumeData JSON file against the resume schema and the data rules without rendering it.",
	RunE:  runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to ResumeData JSON file (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	data, err := readResumeFile(validateInput)
	if err == nil {
		err = data.Validate()
	}
	if err != nil {
		fmt.Fprintln(out, "❌ Validation failed")
		return err
	}

	if data.TemplateID != "" {
		if _, err := catalog.Default().Get(data.TemplateID); err != nil {
			fmt.Fprintln(out, "❌ Validation failed")
			return err
		}
	}

	fmt.Fprintf(out, "✅ Validation passed: %s\n", data.PersonalInfo.FullName())
	if settings.Verbose {
		fmt.Fprintf(out, "  experience: %d, education: %d, skills: %d\n",
			len(data.Experience), len(data.Education), len(data.Skills))
	}
	return nil
}
