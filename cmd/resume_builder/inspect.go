package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a rendered PDF",
	Long:  "Prints the page count of a rendered PDF and, with --text, the extracted text of each page.",
	RunE:  runInspect,
}

var (
	inspectInput string
	inspectText  bool
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "in", "i", "", "Path to PDF file (required)")
	inspectCmd.Flags().BoolVar(&inspectText, "text", false, "Print the extracted text of each page")

	if err := inspectCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(inspectCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runInspect(cmd *cobra.Command, _ []string) error {
	body, err := os.ReadFile(inspectInput)
	if err != nil {
		return fmt.Errorf("failed to read pdf: %w", err)
	}

	out := cmd.OutOrStdout()
	if !inspectText {
		pages, err := validation.CountPages(body)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pages: %d\n", pages)
		return nil
	}

	pages, err := validation.ExtractPages(body)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Pages: %d\n", len(pages))
	for i, text := range pages {
		fmt.Fprintf(out, "\n--- page %d ---\n%s\n", i+1, text)
	}
	return nil
}
