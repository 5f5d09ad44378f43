package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"time"
)

// ExportError is the single error surfaced when PDF generation fails.
type ExportError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Request is the body sent to the render endpoint.
type Request struct {
	HTMLContent string `json:"htmlContent"`
}

// Result is a generated PDF and the filename to save it under.
type Result struct {
	PDF      []byte
	Filename string
}

// Client posts printable documents to a PDF render endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request. There is no timeout by default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// NewClient returns a client for the render endpoint, e.g. "http://localhost:8080/api/generate-pdf".
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{endpoint: endpoint, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate renders html to a PDF. It makes one attempt.
func (c *Client) Generate(ctx context.Context, document string) (*Result, error) {
	body, err := json.Marshal(Request{HTMLContent: document})
	if err != nil {
		return nil, &ExportError{Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ExportError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ExportError{Message: "Failed to generate PDF", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ExportError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Failed to generate PDF: HTTP status %d", resp.StatusCode),
		}
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExportError{Message: "failed to read PDF", Cause: err}
	}

	return &Result{PDF: pdf, Filename: Filename(document)}, nil
}

var (
	titlePattern      = regexp.MustCompile(`<title>(.*?) - Resume</title>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Filename derives "<Name>_resume.pdf" from the document title, with
// whitespace runs replaced by underscores. The title is unescaped first.
func Filename(document string) string {
	name := DefaultName
	if m := titlePattern.FindStringSubmatch(document); m != nil {
		name = html.UnescapeString(m[1])
	}
	return whitespacePattern.ReplaceAllString(name, "_") + "_resume.pdf"
}
