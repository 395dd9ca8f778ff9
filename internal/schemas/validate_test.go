package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResumeJSON = `{
	"personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@x.com", "phone": "555-0100"},
	"summary": "",
	"experience": [{"position": "Engineer", "company": "Acme", "startDate": "2020", "current": true}],
	"education": [],
	"skills": ["Go", "SQL"],
	"templateId": "basic"
}`

func TestEmbeddedSchemas_AreValidJSON(t *testing.T) {
	for name, content := range map[string]string{
		"resume":  ResumeSchema,
		"catalog": CatalogSchema,
	} {
		t.Run(name, func(t *testing.T) {
			var v map[string]any
			require.NoError(t, json.Unmarshal([]byte(content), &v))
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
		})
	}
}

func TestValidateResume_Valid(t *testing.T) {
	assert.NoError(t, ValidateResume([]byte(validResumeJSON)))
}

func TestValidateResume_NullCollections(t *testing.T) {
	doc := `{
		"personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@x.com", "phone": "555-0100"},
		"experience": null, "education": null, "skills": null,
		"templateId": "basic"
	}`
	assert.NoError(t, ValidateResume([]byte(doc)))
}

func TestValidateResume_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing template",
			doc:   `{"personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@x.com", "phone": "1"}}`,
			field: "(root)",
		},
		{
			name:  "bad email",
			doc:   `{"personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "nope", "phone": "1"}, "templateId": "basic"}`,
			field: "personalInfo.email",
		},
		{
			name: "experience missing company",
			doc: `{"personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@x.com", "phone": "1"},
				"experience": [{"position": "Engineer", "startDate": "2020"}], "templateId": "basic"}`,
			field: "experience.0",
		},
		{
			name: "skills wrong type",
			doc: `{"personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@x.com", "phone": "1"},
				"skills": "Go", "templateId": "basic"}`,
			field: "skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume([]byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)

			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected an error at %s, got %v", tt.field, validationErr.Errors)
		})
	}
}

func TestValidateResume_Malformed(t *testing.T) {
	err := ValidateResume([]byte("{ invalid json }"))
	require.Error(t, err)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "resume.schema.json", malformed.Schema)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken.json", `{"type": 12}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "broken.json", loadErr.Path)

	assert.ErrorAs(t, ValidateJSONString(`{"type": 12}`, `{}`), &loadErr)
}

func TestValidateCatalog(t *testing.T) {
	valid := `[{"id": "basic", "name": "Basic", "isPremium": false, "category": ["simple"], "layout": "basic"}]`
	assert.NoError(t, ValidateCatalog([]byte(valid)))

	badAccent := `[{"id": "basic", "name": "Basic", "isPremium": false, "category": [], "layout": "basic", "accent": "blue"}]`
	assert.Error(t, ValidateCatalog([]byte(badAccent)))

	empty := `[]`
	assert.Error(t, ValidateCatalog([]byte(empty)))

	unknownField := `[{"id": "basic", "name": "Basic", "isPremium": false, "category": [], "layout": "basic", "price": 3}]`
	assert.Error(t, ValidateCatalog([]byte(unknownField)))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"name": "test"}`))

	err := ValidateJSONString(schemaContent, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: "person.json",
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Equal(t, "person.json validation failed: name: is required; age: must be a number", errorMsg)
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := assert.AnError
	err := &SchemaLoadError{Path: "x.json", Message: "boom", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "x.json")
}
