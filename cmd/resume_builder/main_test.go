package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default and clears its changed
// state so required-flag checks see a fresh command line.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

// run executes the CLI in process with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDocument(t *testing.T, doc resume.Document) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func completeDocument() resume.Document {
	doc := resume.Empty()
	doc.PersonalInfo = resume.PersonalInfo{
		FirstName: "Ann", LastName: "Lee", RoleApplyingFor: "Engineer",
		Email: "ann@example.com", City: "Oslo", Summary: "Builds things.",
	}
	doc.Experience = []resume.Experience{{ID: "200", Company: "Acme", Position: "Developer", StartDate: "01/2022", Current: true}}
	doc.Skills = []resume.Skill{{ID: "201", Name: "Go", Level: resume.LevelExpert}}
	return doc
}

func TestRender_ToFile(t *testing.T) {
	in := writeDocument(t, completeDocument())
	out := filepath.Join(t.TempDir(), "nested", "resume.html")

	_, stderr, err := run(t, "", "render", "--in", in, "--out", out, "--verbose")
	require.NoError(t, err)

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Ann Lee - Resume</title>")
	assert.Contains(t, string(page), "Developer")
	assert.NotContains(t, string(page), "data-edit-target")
	assert.Contains(t, stderr, "RESUME DOCUMENT")
}

func TestRender_StdinSample(t *testing.T) {
	stdout, _, err := run(t, `{"personalInfo":{"firstName":"Ann"}}`, "render", "--in", "-", "--sample")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ESTELLE")
	assert.NotContains(t, stdout, ">Ann<")
}

func TestRender_Errors(t *testing.T) {
	_, _, err := run(t, "", "render", "--in", "/nonexistent/resume.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document file not found")

	_, _, err = run(t, "{not json", "render", "--in", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse document JSON")

	_, _, err = run(t, "", "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "in" not set`)
}

func TestValidate(t *testing.T) {
	stdout, _, err := run(t, "", "validate", "--in", writeDocument(t, completeDocument()))
	require.NoError(t, err)
	assert.Contains(t, stdout, "DOCUMENT IS VALID")

	doc := completeDocument()
	doc.Experience[0].StartDate = "2022-01"
	doc.Skills[0].Level = "Guru"
	stdout, _, err = run(t, "", "validate", "--in", writeDocument(t, doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation found 2 problem(s)")
	assert.Contains(t, stdout, "experience[200].startDate")
	assert.Contains(t, stdout, "skills[201].level")
}

func TestValidate_SchemaMismatch(t *testing.T) {
	stdout, _, err := run(t, `{"personalInfo":{},"experience":[{"company":"Acme"}],"education":[],"skills":[]}`, "validate", "--in", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
	assert.Contains(t, stdout, "VALIDATION PROBLEMS")
}

func TestDocumentProblems(t *testing.T) {
	assert.Empty(t, documentProblems(completeDocument()))

	problems := documentProblems(resume.Empty())
	assert.Contains(t, problems, "personalInfo.firstName")
	assert.Contains(t, problems, "personalInfo.summary")
}

func TestExport_RenderURL(t *testing.T) {
	var posted export.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &posted)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	in := writeDocument(t, completeDocument())
	out := filepath.Join(t.TempDir(), "out.pdf")

	stdout, _, err := run(t, "", "export", "--in", in, "--out", out, "--render-url", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.Contains(t, posted.HTMLContent, "<title>Ann Lee - Resume</title>")
	assert.NotContains(t, posted.HTMLContent, "<script")
}

func TestExport_RenderServiceFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"Failed to generate PDF"}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	in := writeDocument(t, completeDocument())
	_, _, err := run(t, "", "export", "--in", in, "--out", filepath.Join(t.TempDir(), "out.pdf"), "--render-url", ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 500")
}

func TestExport_UnknownEngine(t *testing.T) {
	in := writeDocument(t, completeDocument())
	_, _, err := run(t, "", "export", "--in", in, "--engine", "wkhtmltopdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown PDF engine")
}
