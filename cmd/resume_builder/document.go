package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/sirupsen/logrus"
)

// readDocument loads a saved document from path, or stdin for "-". Schema
// problems are logged and do not stop the load.
func readDocument(path string, stdin io.Reader, logger *logrus.Logger) (resume.Document, []byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return resume.Document{}, nil, fmt.Errorf("document file not found: %s", path)
		}
		return resume.Document{}, nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := storage.Decode(data)
	if err != nil {
		return resume.Document{}, nil, fmt.Errorf("failed to parse document JSON: %w", err)
	}
	if err := schemas.ValidateDocument(data); err != nil {
		logger.WithError(err).Warn("Document does not match schema")
	}
	return doc, data, nil
}

// renderPage renders doc with templateID for printing.
func renderPage(doc resume.Document, templateID string, sample bool) (string, error) {
	var mode rendering.Mode = rendering.LiveMode{}
	if sample {
		mode = rendering.SampleMode{}
	}
	renderer, err := rendering.New(templateID, mode)
	if err != nil {
		return "", err
	}
	return renderer.RenderString(doc, editing.State{})
}

// writeOutput writes data to path, creating parent directories, or to
// stdout for "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
