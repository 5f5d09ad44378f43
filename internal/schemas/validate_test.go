package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_Valid(t *testing.T) {
	doc := `{
		"personalInfo": {"firstName": "Ann", "lastName": "Lee"},
		"experience": [{"id": "200", "company": "Acme", "current": true}],
		"education": [],
		"skills": [{"id": "201", "name": "Go", "level": "Expert"}],
		"isFresher": false
	}`
	assert.NoError(t, ValidateDocument([]byte(doc)))
}

func TestValidateDocument_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{name: "missing lists", doc: `{"personalInfo": {}}`, field: "(root)"},
		{name: "wrong type", doc: `{"personalInfo": {}, "experience": [], "education": [], "skills": "go"}`, field: "skills"},
		{name: "skill without id", doc: `{"personalInfo": {}, "experience": [], "education": [], "skills": [{"name": "Go"}]}`, field: "skills.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tt.doc))
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument([]byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}

func TestValidateTailoringResponse(t *testing.T) {
	assert.NoError(t, ValidateTailoringResponse([]byte(`{"summary": "x", "skills": [{"name": "Go"}]}`)))
	assert.Error(t, ValidateTailoringResponse([]byte(`{"skills": [{"name": ""}]}`)))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"]}`
	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))
	assert.Error(t, ValidateJSONString(schema, `{}`))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "skills", Message: "Invalid type"}}}
	assert.Contains(t, err.Error(), "1. skills: Invalid type")
}
