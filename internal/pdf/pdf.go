// Package pdf renders standalone HTML documents to A4 PDFs with a headless browser.
package pdf

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// A4 paper size in inches.
const (
	PaperWidthInches  = 8.27
	PaperHeightInches = 11.69
)

// DefaultTimeout bounds one render.
const DefaultTimeout = 60 * time.Second

// Engine names accepted by New.
const (
	EngineChromedp = "chromedp"
	EngineRod      = "rod"
)

// Renderer turns an HTML document into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Options configures a renderer.
type Options struct {
	Engine     string
	ChromePath string
	Timeout    time.Duration
}

// OptionsFromEnv reads PDF_ENGINE and CHROME_PATH.
func OptionsFromEnv() Options {
	return Options{
		Engine:     os.Getenv("PDF_ENGINE"),
		ChromePath: os.Getenv("CHROME_PATH"),
	}
}

// New returns the renderer for opts.Engine. Empty selects chromedp.
func New(opts Options) (Renderer, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	switch strings.ToLower(strings.TrimSpace(opts.Engine)) {
	case "", EngineChromedp:
		return &ChromedpRenderer{ChromePath: opts.ChromePath, Timeout: opts.Timeout}, nil
	case EngineRod:
		return &RodRenderer{ChromePath: opts.ChromePath, Timeout: opts.Timeout}, nil
	default:
		return nil, fmt.Errorf("unknown PDF engine %q: must be %s or %s", opts.Engine, EngineChromedp, EngineRod)
	}
}

// RenderError wraps a browser failure.
type RenderError struct {
	Engine  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s render error: %s: %v", e.Engine, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s render error: %s", e.Engine, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
