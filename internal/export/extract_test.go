package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><head>
<title>Ann Lee - Resume</title>
<style>.resume-template h1 { color: red; }</style>
%LINKS%
</head><body>
<nav>menu</nav>
<div id="resume-preview" class="a4-container">
<div id="resume-content" class="resume-template template-3">
<div class="name"><h1>Ann Lee</h1></div>
<p>Builds things.</p>
</div>
</div>
</body></html>`

func newExtractor() *Extractor {
	return NewExtractor(nil, logging.Discard())
}

func TestExtract_FindsRootAndStyles(t *testing.T) {
	out, err := newExtractor().Extract(context.Background(), strings.Replace(page, "%LINKS%", "", 1), "")
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Ann Lee - Resume</title>")
	assert.Contains(t, out, `<div id="resume-content" class="resume-template template-3">`)
	assert.Contains(t, out, ".resume-template h1 { color: red; }")
	assert.Contains(t, out, "@page { margin: 0; size: A4; }")
	assert.NotContains(t, out, "menu")

	assert.Less(t, strings.Index(out, "color: red"), strings.Index(out, "@page"))
}

func TestExtract_FallbackSelectors(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "template class",
			html: `<div class="resume-template"><h2>Bo</h2></div>`,
			want: `<div class="resume-template"><h2>Bo</h2></div>`,
		},
		{
			name: "inside preview container",
			html: `<div id="resume-preview"><section class="modern-template"><h2>Cy</h2></section></div>`,
			want: `<section class="modern-template"><h2>Cy</h2></section>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newExtractor().Extract(context.Background(), tt.html, "")
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestExtract_MissingRoot(t *testing.T) {
	_, err := newExtractor().Extract(context.Background(), `<html><body><p>nothing</p></body></html>`, "")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestExtract_DefaultName(t *testing.T) {
	out, err := newExtractor().Extract(context.Background(), `<div id="resume-content"><p>x</p></div>`, "")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>resume - Resume</title>")
}

func TestExtract_LinkedStylesheets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/app.css":
			_, _ = w.Write([]byte(".linked { color: blue; }"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	links := `<link rel="stylesheet" href="/app.css"><link rel="stylesheet" href="/missing.css">`
	out, err := NewExtractor(srv.Client(), logging.Discard()).
		Extract(context.Background(), strings.Replace(page, "%LINKS%", links, 1), srv.URL+"/resume")
	require.NoError(t, err)

	assert.Contains(t, out, ".linked { color: blue; }")
	assert.Contains(t, out, "Ann Lee")
}

func TestExtract_RelativeLinkWithoutBaseIsSkipped(t *testing.T) {
	links := `<link rel="stylesheet" href="/app.css">`
	out, err := newExtractor().Extract(context.Background(), strings.Replace(page, "%LINKS%", links, 1), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann Lee")
}
