package pdf

import (
	"context"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodRenderer prints through a go-rod managed browser, launched per call.
type RodRenderer struct {
	ChromePath string
	Timeout    time.Duration
}

// RenderHTMLToPDF loads html into a blank page and prints it with the same
// settings as ChromedpRenderer.
func (r *RodRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")
	if r.ChromePath != "" {
		l = l.Bin(r.ChromePath)
	}
	defer l.Cleanup()

	controlURL, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, &RenderError{Engine: EngineRod, Message: "failed to launch browser", Cause: err}
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, &RenderError{Engine: EngineRod, Message: "failed to connect to browser", Cause: err}
	}
	defer func() { _ = browser.Close() }()

	p, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, &RenderError{Engine: EngineRod, Message: "failed to open page", Cause: err}
	}
	if err := p.SetDocumentContent(html); err != nil {
		return nil, &RenderError{Engine: EngineRod, Message: "failed to set page content", Cause: err}
	}
	if err := p.WaitLoad(); err != nil {
		return nil, &RenderError{Engine: EngineRod, Message: "page did not load", Cause: err}
	}

	width, height, zero := PaperWidthInches, PaperHeightInches, 0.0
	stream, err := p.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PaperWidth:        &width,
		PaperHeight:       &height,
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, &RenderError{Engine: EngineRod, Message: "failed to print page", Cause: err}
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, &RenderError{Engine: EngineRod, Message: "failed to read PDF stream", Cause: err}
	}
	return data, nil
}
