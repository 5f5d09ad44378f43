// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// PrintDocument outputs a human-readable summary of a resume document.
func (p *Printer) PrintDocument(doc resume.Document) {
	var sb strings.Builder
	info := doc.PersonalInfo

	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(info.FullName())))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", orDash(info.RoleApplyingFor)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(info.Email)))
	if doc.IsFresher {
		sb.WriteString("Fresher:  yes\n")
	}
	sb.WriteString("\n")

	if len(doc.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(doc.Experience)))
		count := min(len(doc.Experience), maxItemsToShow)
		for _, e := range doc.Experience[:count] {
			sb.WriteString(fmt.Sprintf("  • %s at %s", orDash(e.Position), orDash(e.Company)))
			if dates := formatDates(e.StartDate, e.EndDate, e.Current); dates != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", dates))
			}
			sb.WriteString("\n")
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(doc.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(doc.Education)))
		count := min(len(doc.Education), 3)
		for _, e := range doc.Education[:count] {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", orDash(e.Degree), orDash(e.Institution)))
		}
		if len(doc.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Education)-3))
		}
		sb.WriteString("\n")
	}

	if len(doc.Skills) > 0 {
		names := make([]string, 0, len(doc.Skills))
		for _, sk := range doc.Skills {
			names = append(names, sk.Name)
		}
		sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(doc.Skills), strings.Join(names, ", ")))
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func formatDates(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	default:
		return start + " - " + end
	}
}

// PrintValidation outputs the problems carried by err: form field errors,
// schema errors, or a plain message. A nil err prints a success box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ DOCUMENT IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var lines []string
	var fieldErrs resume.FieldErrors
	var schemaErr *schemas.ValidationError
	switch {
	case errors.As(err, &fieldErrs):
		keys := make([]string, 0, len(fieldErrs))
		for k := range fieldErrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("⚠ %s\n  %s", k, fieldErrs[k]))
		}
	case errors.As(err, &schemaErr):
		for _, fe := range schemaErr.Errors {
			lines = append(lines, fmt.Sprintf("⚠ %s\n  %s", fe.Field, fe.Message))
		}
	default:
		lines = append(lines, "⚠ "+err.Error())
	}

	content := fmt.Sprintf("Found %d problem(s):\n\n%s", len(lines), strings.Join(lines, "\n\n"))
	p.printBox("VALIDATION PROBLEMS", content)
}

// PrintExport outputs where a PDF was written and what it contains.
func (p *Printer) PrintExport(path string, info *pdf.Info) {
	if info == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", info.Pages))
	sb.WriteString(fmt.Sprintf("Size:     %s", formatBytes(info.Size)))
	if info.Pages > 1 {
		sb.WriteString("\n\n⚠ Resume spans more than one page")
	}

	p.printBox("PDF EXPORT", sb.String())
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
