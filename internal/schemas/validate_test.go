package schemas

import (
	"os"
	"path/filepath"
	"testing"

	schemadocs "github.com/jonathan/placement-matcher/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range schemadocs.All {
		t.Run(name, func(t *testing.T) {
			s, err := Load(name)
			require.NoError(t, err)
			assert.NotNil(t, s)

			again, err := Load(name)
			require.NoError(t, err)
			assert.Same(t, s, again, "compiled schema should be cached")
		})
	}
}

func TestLoad_UnknownSchema(t *testing.T) {
	_, err := Load("missing.schema.json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestValidate_Lexicon(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{"valid", `{"entries":[{"canonical":"go","category":"LANGUAGE","synonyms":["golang"]}]}`, false},
		{"valid with version", `{"version":"1","entries":[{"canonical":"docker","category":"TOOL"}]}`, false},
		{"missing entries", `{"version":"1"}`, true},
		{"empty entries", `{"entries":[]}`, true},
		{"bad category", `{"entries":[{"canonical":"go","category":"LANG"}]}`, true},
		{"empty canonical", `{"entries":[{"canonical":"","category":"TOOL"}]}`, true},
		{"duplicate synonyms", `{"entries":[{"canonical":"go","category":"LANGUAGE","synonyms":["golang","golang"]}]}`, true},
		{"unknown field", `{"entries":[{"canonical":"go","category":"LANGUAGE","weight":3}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(schemadocs.Lexicon, []byte(tt.document))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.Errors)
		})
	}
}

func TestValidate_RequestSchemas(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		document  string
		wantError bool
	}{
		{"resume ok", schemadocs.AnalyzeResumeRequest, `{"resume_text":"x","profile":{"cgpa":8.1,"backlogs":0}}`, false},
		{"resume missing profile", schemadocs.AnalyzeResumeRequest, `{"resume_text":"x"}`, true},
		{"resume cgpa off scale", schemadocs.AnalyzeResumeRequest, `{"resume_text":"x","profile":{"cgpa":82}}`, false},
		{"resume negative backlogs", schemadocs.AnalyzeResumeRequest, `{"resume_text":"x","profile":{"backlogs":-1}}`, true},
		{"resume null min cgpa", schemadocs.AnalyzeResumeRequest, `{"resume_text":"x","profile":{},"requirements":{"min_cgpa":null}}`, false},
		{"jd ok", schemadocs.AnalyzeJDRequest, `{"description":"Go required"}`, false},
		{"jd wrong type", schemadocs.AnalyzeJDRequest, `{"description":42}`, true},
		{"match ok", schemadocs.MatchJDRequest, `{"resume_text":"x","description":"y"}`, false},
		{"match missing description", schemadocs.MatchJDRequest, `{"resume_text":"x"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.schema, []byte(tt.document))
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(schemadocs.AnalyzeJDRequest, []byte("{ invalid json }"))
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "(root)", vErr.Errors[0].Field)
}

func TestValidateFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "lexicon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"entries":[{"canonical":"sql","category":"LANGUAGE"}]}`), 0644))

	assert.NoError(t, ValidateFile(schemadocs.Lexicon, path))

	err := ValidateFile(schemadocs.Lexicon, filepath.Join(tmpDir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
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
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "canonical", Message: "is required"},
			{Field: "category", Message: "must be one of the following"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "canonical")
	assert.Contains(t, errorMsg, "category")
}
