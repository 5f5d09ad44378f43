package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var (
	renderInput    string
	renderOutput   string
	renderTemplate string
	renderSample   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a saved resume document to HTML",
	Long:  "Renders a saved resume document (the JSON the server persists) through a template without edit affordances.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to document JSON, or - for stdin (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "-", "Path to output HTML file, or - for stdout")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (default template when empty)")
	renderCmd.Flags().BoolVar(&renderSample, "sample", false, "Render the sample document instead of the input")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	doc, _, err := readDocument(renderInput, cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}
	page, err := renderPage(doc, renderTemplate, renderSample)
	if err != nil {
		return err
	}
	if err := writeOutput(renderOutput, []byte(page), cmd.OutOrStdout()); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDocument(doc)
	}
	return nil
}
