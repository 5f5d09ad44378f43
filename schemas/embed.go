// Package schemas bundles the JSON Schemas for persisted and generated artifacts.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	ResumeDocument    = "resume_document.schema.json"
	TailoringResponse = "tailoring_response.schema.json"
)
