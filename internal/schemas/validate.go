// Package schemas validates JSON artifacts against the bundled JSON Schemas.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	schemafiles "github.com/jonathan/resume-builder/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or compiling a schema
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

type compiled struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*compiled{}
)

// load compiles a bundled schema once and reuses it afterwards.
func load(name string) (*gojsonschema.Schema, error) {
	cacheMu.Lock()
	c, ok := cache[name]
	if !ok {
		c = &compiled{}
		cache[name] = c
	}
	cacheMu.Unlock()

	c.once.Do(func() {
		data, err := schemafiles.FS.ReadFile(name)
		if err != nil {
			c.err = &SchemaLoadError{Name: name, Message: "schema not bundled", Cause: err}
			return
		}
		c.schema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			c.err = &SchemaLoadError{Name: name, Message: "schema failed to compile", Cause: err}
		}
	})
	return c.schema, c.err
}

// Validate checks raw JSON against the bundled schema called name.
func Validate(name string, data []byte) error {
	schema, err := load(name)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	return toValidationError(result)
}

// ValidateDocument checks a persisted resume document.
func ValidateDocument(data []byte) error {
	return Validate(schemafiles.ResumeDocument, data)
}

// ValidateTailoringResponse checks a model's tailoring answer.
func ValidateTailoringResponse(data []byte) error {
	return Validate(schemafiles.TailoringResponse, data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Name:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
