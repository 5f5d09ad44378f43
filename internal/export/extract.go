// Package export turns a rendered resume page into a standalone printable
// HTML document and sends it to a PDF rendering endpoint.
package export

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrContentNotFound is returned when the page has no resume root element.
var ErrContentNotFound = errors.New("resume content not found")

// DefaultName is used when the resume root has no name element.
const DefaultName = "resume"

// rootSelectors are tried in order; the first match is the resume root.
var rootSelectors = []string{
	"#resume-content",
	".resume-template",
	`#resume-preview [class*="resume-template"], #resume-preview [id*="resume"], #resume-preview [class*="template"]`,
}

const nameSelector = `h1, h2, .name, [class*="name"]`

// printOverrides force A4 sizing and drop screen chrome when printing.
const printOverrides = `
/* PDF-specific overrides for A4 sizing */
@page { margin: 0; size: A4; }
body {
  background: white !important;
  -webkit-print-color-adjust: exact !important;
  print-color-adjust: exact !important;
  margin: 0 !important;
  padding: 0 !important;
}
.a4-container {
  width: 210mm !important;
  height: 297mm !important;
  box-shadow: none !important;
  border-radius: 0 !important;
  margin: 0 !important;
  padding: 0 !important;
  overflow: visible !important;
}
.resume-template, #resume-content {
  width: 100% !important;
  height: 100% !important;
  margin: 0 !important;
  box-shadow: none !important;
  border-radius: 0 !important;
}
.no-print { display: none !important; }
`

// Extractor pulls the resume root and its styles out of a rendered page.
type Extractor struct {
	client *http.Client
	logger *logrus.Logger
}

// NewExtractor returns an extractor. client fetches linked stylesheets and
// defaults to http.DefaultClient.
func NewExtractor(client *http.Client, logger *logrus.Logger) *Extractor {
	if client == nil {
		client = http.DefaultClient
	}
	return &Extractor{client: client, logger: logging.OrStandard(logger)}
}

// Extract returns the printable document for pageHTML. baseURL resolves
// relative stylesheet links; links that cannot be resolved or fetched are
// skipped with a warning.
func (e *Extractor) Extract(ctx context.Context, pageHTML, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	root := findRoot(doc)
	if root == nil {
		return "", ErrContentNotFound
	}

	content, err := goquery.OuterHtml(root)
	if err != nil {
		return "", fmt.Errorf("failed to serialize resume content: %w", err)
	}

	styles := e.collectStyles(ctx, doc, baseURL)
	return BuildPDFHTML(content, PersonName(root), styles), nil
}

func findRoot(doc *goquery.Document) *goquery.Selection {
	for _, selector := range rootSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel.First()
		}
	}
	return nil
}

// PersonName reads the name shown inside the resume root.
func PersonName(root *goquery.Selection) string {
	name := strings.TrimSpace(root.Find(nameSelector).First().Text())
	if name == "" {
		return DefaultName
	}
	return name
}

func (e *Extractor) collectStyles(ctx context.Context, doc *goquery.Document, baseURL string) string {
	var inline []string
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		inline = append(inline, s.Text())
	})

	var hrefs []string
	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && strings.TrimSpace(href) != "" {
			hrefs = append(hrefs, href)
		}
	})

	linked := make([]string, len(hrefs))
	g, gCtx := errgroup.WithContext(ctx)
	for i, href := range hrefs {
		g.Go(func() error {
			css, err := e.fetchStylesheet(gCtx, href, baseURL)
			if err != nil {
				e.logger.WithError(err).WithField("href", href).Warn("Could not read stylesheet")
				return nil
			}
			linked[i] = css
			return nil
		})
	}
	_ = g.Wait()

	parts := append(inline, linked...)
	return strings.Join(nonEmpty(parts), "\n")
}

func (e *Extractor) fetchStylesheet(ctx context.Context, href, baseURL string) (string, error) {
	target, err := resolve(href, baseURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("stylesheet request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stylesheet request returned HTTP status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read stylesheet: %w", err)
	}
	return string(body), nil
}

func resolve(href, baseURL string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid stylesheet URL %q: %w", href, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if baseURL == "" {
		return "", fmt.Errorf("relative stylesheet URL %q without a base URL", href)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// BuildPDFHTML wraps content in a standalone A4 document titled
// "<personName> - Resume". styles come first, then the print overrides.
func BuildPDFHTML(content, personName, styles string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\" />\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	fmt.Fprintf(&b, "<title>%s - Resume</title>\n", html.EscapeString(personName))
	b.WriteString("<style>\n")
	b.WriteString(styles)
	b.WriteString(printOverrides)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(content)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
