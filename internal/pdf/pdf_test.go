package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		want    any
		wantErr bool
	}{
		{name: "default", engine: "", want: &ChromedpRenderer{}},
		{name: "chromedp", engine: "chromedp", want: &ChromedpRenderer{}},
		{name: "rod", engine: " Rod ", want: &RodRenderer{}},
		{name: "unknown", engine: "wkhtmltopdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(Options{Engine: tt.engine, ChromePath: "/usr/bin/chromium"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, r.(*ChromedpRenderer).Timeout)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("PDF_ENGINE", "rod")
	t.Setenv("CHROME_PATH", "/opt/chrome")

	opts := OptionsFromEnv()
	assert.Equal(t, "rod", opts.Engine)
	assert.Equal(t, "/opt/chrome", opts.ChromePath)
}

func TestInspect_RejectsGarbage(t *testing.T) {
	_, err := Inspect([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestRenderError(t *testing.T) {
	err := &RenderError{Engine: EngineRod, Message: "failed to launch browser", Cause: assert.AnError}
	assert.Equal(t, "rod render error: failed to launch browser: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)
}
