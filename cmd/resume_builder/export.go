package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/spf13/cobra"
)

var (
	exportInput     string
	exportOutput    string
	exportTemplate  string
	exportRenderURL string
	exportEngine    string
	exportTimeout   time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a saved resume document to PDF",
	Long: `Renders a saved resume document, extracts the printable resume and turns it into an A4 PDF.
The PDF is produced by a local headless Chrome, or by a running server's /api/generate-pdf when --render-url is set.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to document JSON, or - for stdin (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output PDF (default <Name>_resume.pdf)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template id (default template when empty)")
	exportCmd.Flags().StringVar(&exportRenderURL, "render-url", "", "Render endpoint to post the HTML to instead of a local browser")
	exportCmd.Flags().StringVar(&exportEngine, "engine", "", "Local PDF engine: chromedp or rod (overrides config)")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", pdf.DefaultTimeout, "Timeout for producing the PDF")

	if err := exportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	doc, _, err := readDocument(exportInput, cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}
	page, err := renderPage(doc, exportTemplate, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
	defer cancel()

	printable, err := export.NewExtractor(nil, logger).Extract(ctx, page, "")
	if err != nil {
		return fmt.Errorf("failed to extract resume content: %w", err)
	}

	var data []byte
	filename := export.Filename(printable)
	if exportRenderURL != "" {
		result, err := export.NewClient(exportRenderURL, export.WithTimeout(exportTimeout)).Generate(ctx, printable)
		if err != nil {
			return err
		}
		data, filename = result.PDF, result.Filename
	} else {
		engine := cfg.PDF.Engine
		if exportEngine != "" {
			engine = exportEngine
		}
		renderer, err := pdf.New(pdf.Options{Engine: engine, ChromePath: cfg.PDF.ChromePath, Timeout: exportTimeout})
		if err != nil {
			return err
		}
		if data, err = renderer.RenderHTMLToPDF(ctx, printable); err != nil {
			return err
		}
	}

	out := exportOutput
	if out == "" {
		out = filename
	}
	if err := writeOutput(out, data, cmd.OutOrStdout()); err != nil {
		return err
	}

	info, err := pdf.Inspect(data)
	if err != nil {
		logger.WithError(err).Warn("Exported PDF did not validate")
		info = &pdf.Info{Size: len(data)}
	} else if info.Pages > 1 {
		logger.WithField("pages", info.Pages).Warn("Resume spans more than one page")
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintExport(out, info)
	} else if out != "-" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", out)
	}
	return nil
}
