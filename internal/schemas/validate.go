// Package schemas provides JSON Schema validation for resume payloads and the template catalog.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ResumeSchema is the JSON Schema for a ResumeData payload.
//
//go:embed resume.schema.json
var ResumeSchema string

// CatalogSchema is the JSON Schema for the embedded template catalog.
//
//go:embed catalog.schema.json
var CatalogSchema string

var (
	resumeSchema = sync.OnceValues(func() (*Schema, error) {
		return Compile("resume.schema.json", ResumeSchema)
	})
	catalogSchema = sync.OnceValues(func() (*Schema, error) {
		return Compile("catalog.schema.json", CatalogSchema)
	})
)

// FieldError is one failed rule at a JSON path ("(root)" for the document).
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every rule a document failed.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%s validation failed: %s", ve.Schema, strings.Join(parts, "; "))
}

// SchemaLoadError reports a schema that cannot be compiled.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// MalformedError reports a document that is not JSON.
type MalformedError struct {
	Schema string
	Cause  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: document is not valid JSON: %v", e.Schema, e.Cause)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema. It is safe for concurrent use.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses schema content once so it can validate many documents.
func Compile(name, content string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	return &Schema{name: name, schema: s}, nil
}

// Validate checks doc against the schema. It returns *MalformedError when
// doc is not JSON and *ValidationError when it breaks the schema.
func (s *Schema) Validate(doc []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &MalformedError{Schema: s.name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: s.name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

// ValidateResume validates a raw ResumeData JSON document.
func ValidateResume(doc []byte) error {
	s, err := resumeSchema()
	if err != nil {
		return err
	}
	return s.Validate(doc)
}

// ValidateCatalog validates a raw template catalog JSON document.
func ValidateCatalog(doc []byte) error {
	s, err := catalogSchema()
	if err != nil {
		return err
	}
	return s.Validate(doc)
}

// ValidateJSONString validates JSON content against schema content.
func ValidateJSONString(schemaContent, jsonContent string) error {
	s, err := Compile("(string schema)", schemaContent)
	if err != nil {
		return err
	}
	return s.Validate([]byte(jsonContent))
}
