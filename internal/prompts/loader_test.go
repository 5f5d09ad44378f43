package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(Tailoring, "tailor-resume")
	require.NoError(t, err)
	assert.Contains(t, prompt, "JOB DESCRIPTION")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(Tailoring, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { MustGet(Tailoring, "part-skills") })
}

func TestRender(t *testing.T) {
	out, err := Render(Tailoring, "tailor-resume", map[string]string{
		"JobDescription": "Go developer wanted",
		"Resume":         `{"skills":[]}`,
		"Parts":          "- summary\n",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Go developer wanted")
	assert.Contains(t, out, `{"skills":[]}`)
	assert.NotContains(t, out, "{{")
}

func TestRender_MissingData(t *testing.T) {
	_, err := Render(Tailoring, "tailor-resume", map[string]string{"JobDescription": "x"})
	assert.Error(t, err)
}
