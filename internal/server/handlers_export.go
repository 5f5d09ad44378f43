package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/tailoring"
	"github.com/sirupsen/logrus"
)

// ExportRequest is the body of POST /api/export. An empty body exports the
// default template.
type ExportRequest struct {
	Template string `json:"template"`
}

// selfBase is the loopback address of this server. Relative links in
// rendered pages resolve against it rather than the request's Host.
func (s *Server) selfBase() string {
	return fmt.Sprintf("http://127.0.0.1:%d", s.cfg.Port)
}

// generate sends printable to the configured render endpoint, or renders it
// in-process when none is configured.
func (s *Server) generate(ctx context.Context, printable string) (*export.Result, error) {
	if s.cfg.PDF.RenderURL == "" {
		data, err := s.pdfRenderer.RenderHTMLToPDF(ctx, printable)
		if err != nil {
			return nil, &export.ExportError{Message: "Failed to generate PDF", Cause: err}
		}
		return &export.Result{PDF: data, Filename: export.Filename(printable)}, nil
	}

	var opts []export.ClientOption
	if d := s.cfg.ExportTimeoutDuration(); d > 0 {
		opts = append(opts, export.WithTimeout(d))
	}
	return export.NewClient(s.cfg.PDF.RenderURL, opts...).Generate(ctx, printable)
}

// handleExport renders the session's document without edit affordances,
// extracts the printable part and sends it to the render endpoint.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, &ErrValidation{Message: "Invalid request body: " + err.Error()})
		return
	}

	renderer, err := rendering.New(req.Template, rendering.LiveMode{AllowEditing: false})
	if err != nil {
		s.writeError(w, err)
		return
	}
	page, err := renderer.RenderString(s.workspace(r).Store.Document(), editing.State{})
	if err != nil {
		s.writeError(w, err)
		return
	}

	printable, err := s.extractor.Extract(r.Context(), page, s.selfBase())
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.generate(r.Context(), printable)
	if err != nil {
		s.logger.WithError(err).Error("Export failed")
		s.writeError(w, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"filename": result.Filename,
		"bytes":    len(result.PDF),
	}).Info("Exported resume")
	writePDF(w, result.PDF, result.Filename)
}

// handleGeneratePDF renders {htmlContent} to an A4 PDF.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req export.Request
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.HTMLContent) == "" {
		s.errorResponse(w, http.StatusBadRequest, "htmlContent is required")
		return
	}

	data, err := s.pdfRenderer.RenderHTMLToPDF(r.Context(), req.HTMLContent)
	if err != nil {
		s.logger.WithError(err).Error("PDF generation error")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	if info, err := pdf.Inspect(data); err != nil {
		s.logger.WithError(err).Warn("Generated PDF did not validate")
	} else {
		w.Header().Set("X-Page-Count", strconv.Itoa(info.Pages))
		if info.Pages > 1 {
			s.logger.WithField("pages", info.Pages).Warn("Resume spans more than one page")
		}
	}
	writePDF(w, data, "resume.pdf")
}

func writePDF(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// TailorResponse reports what tailoring changed and the resulting document.
type TailorResponse struct {
	*tailoring.Result
	Document resume.Document `json:"document"`
}

// handleTailor applies LLM suggestions for a job description to the document.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	if s.tailor == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Tailoring is not configured")
		return
	}
	var req tailoring.Request
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	store := s.workspace(r).Store
	result, err := s.tailor.Tailor(r.Context(), store, req)
	if err != nil {
		s.logger.WithError(err).Error("Tailoring failed")
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TailorResponse{Result: result, Document: store.Document()})
}
